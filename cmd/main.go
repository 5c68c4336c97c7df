// Package main is the entry point for the pool-flow-service application.
//
// @title           Pool Flow Service API
// @version         1.0.0
// @description     Calculates pool water volumes and the circulation flow rates needed to meet turnover targets.
//
//	Each zone's volume is its area times average depth times gallons per cubic foot,
//	and its flow rate is that volume divided by the turnover time.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/pool-flow-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 HS256 bearer token carrying sub and scope claims.
//
// @tag.name        Flow
// @tag.description Flow rate calculation and stored runs
//
// @tag.name        Export
// @tag.description CSV, XLSX and JSON report downloads
//
// @tag.name        Constants
// @tag.description Versioned global constants profiles
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/guttosm/pool-flow-service/docs" // swagger docs

	"github.com/guttosm/pool-flow-service/config"
	"github.com/guttosm/pool-flow-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port,
		app.WithRequestTimeout(cfg.Server.RequestTimeout),
		app.WithShutdownHook(application.Close),
	)

	if err := server.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
