// Package logger expone un logger zap global con scoping por contexto.
//
// main inicializa una vez:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "dealerdesk"})
//	defer logger.Sync()
//
// El middleware de logging guarda en el contexto un logger con request_id,
// método y path. Services y handlers lo recuperan con From:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("onboarding"))
//	log.Warn("dealer upsert failed", logger.Email(email), logger.Err(err))
//
// Sin logger en el contexto, From devuelve el global.
package logger
