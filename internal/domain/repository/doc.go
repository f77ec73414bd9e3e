// Package repository define las interfaces de repositorio de dominio.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente (PostgreSQL o memoria).
//
// Las implementaciones concretas viven en internal/store/adapters/.
//
// Arquitectura:
//
//	┌──────────────────────────────────────────────────────┐
//	│     onboarding.Engine / Services / Controllers       │
//	└──────────────────────────────────────────────────────┘
//	                         │
//	                         ▼
//	┌──────────────────────────────────────────────────────┐
//	│          domain/repository (interfaces)              │
//	│  UserRepository, DealerRepository, LeadRepository    │
//	│  SessionRepository, AuditRepository                  │
//	└──────────────────────────────────────────────────────┘
//	                         │
//	               ┌─────────┴─────────┐
//	               ▼                   ▼
//	        ┌─────────────┐     ┌─────────────┐
//	        │  adapters/  │     │  adapters/  │
//	        │     pg      │     │   memory    │
//	        └─────────────┘     └─────────────┘
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Los emails se comparan normalizados (trim + lower), ver NormalizeEmail
//   - Lead, Dealer y User no tienen foreign keys entre sí: se unen por email
//   - Errores de dominio están en errors.go
package repository
