package admin

import "github.com/dropDatabas3/dealerdesk/internal/domain/repository"

type Stats struct {
	TotalLeads     int `json:"totalLeads"`
	ActiveDealers  int `json:"activeDealers"`
	PendingDealers int `json:"pendingDealers"`
	Proto30d       int `json:"proto30d"`
}

type EventList struct {
	Items []repository.AuditEvent `json:"items"`
}

type ImpersonateResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	ExpiresIn   int64    `json:"expiresIn"`
	UserID      string   `json:"userId"`
	Roles       []string `json:"roles"`
}
