package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/propdash/portfolio-service/internal/app"
	"github.com/propdash/portfolio-service/internal/config"
	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName, os.Stdout)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize portfolio-service:", err)
	}

	router := application.NewRouter()

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC))

	_, err = c.AddFunc(constants.LeaseSweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.LeaseSweepJobTimeout)
		defer cancel()
		utils.Logger.Info("Starting lease expiry sweep cron job...")
		published, err := application.LeaseSweep.RunSweep(ctx)
		if err != nil {
			utils.Logger.WithError(err).Error("Lease expiry sweep failed")
			return
		}
		application.RefreshUnreadGauge()
		utils.Logger.Infof("Lease expiry sweep published %d warnings", published)
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule lease expiry sweep cron")
	}

	c.Start()
	defer c.Stop()
	utils.Logger.Info("Scheduled lease expiry sweep")

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, constants.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-User-Role"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("portfolio-service failed to start:", err)
	}
}
