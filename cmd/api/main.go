package main

import (
	"context"
	"net/http"

	"github.com/footagedesk/catalogsync/pkg/config"
	"github.com/footagedesk/catalogsync/pkg/database"
	"github.com/footagedesk/catalogsync/pkg/migrations"
	"github.com/footagedesk/catalogsync/pkg/payments"
	"github.com/footagedesk/catalogsync/pkg/server"
	"github.com/footagedesk/catalogsync/pkg/version"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	// Local development keeps its credentials in a .env file.
	_ = godotenv.Load()

	log.Info("starting catalogsync", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	var paymentsAPI payments.API
	if cfg.StripeSecretKey != "" {
		paymentsAPI = payments.NewStripeAPI(cfg.StripeSecretKey)
	} else {
		log.Warn("no payment key configured, catalog reconciliation disabled")
	}

	srv, err := server.New(cfg, db, paymentsAPI)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		log.Info("server started", logger.Data{"addr": srv.Addr})
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
