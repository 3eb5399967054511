package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/bookscoutapp/bookscout/pkg/authors"
	"github.com/bookscoutapp/bookscout/pkg/books"
	"github.com/bookscoutapp/bookscout/pkg/config"
	"github.com/bookscoutapp/bookscout/pkg/database"
	"github.com/bookscoutapp/bookscout/pkg/jobs"
	"github.com/bookscoutapp/bookscout/pkg/migrations"
	"github.com/bookscoutapp/bookscout/pkg/scanner"
	"github.com/bookscoutapp/bookscout/pkg/server"
	"github.com/bookscoutapp/bookscout/pkg/settings"
	"github.com/bookscoutapp/bookscout/pkg/version"
	"github.com/bookscoutapp/bookscout/pkg/worker"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting bookscout", logger.Data{"version": version.Version})

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

	scanService := scanner.NewService(cfg, authors.NewService(db), books.NewService(db), settings.NewService(db, cfg))
	wrkr := worker.New(cfg, jobs.NewService(db), scanService)

	srv, err := server.New(cfg, db, scanService)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		actualPort := listener.Addr().(*net.TCPAddr).Port
		log.Info("server started", logger.Data{"port": actualPort})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	wrkr.Start()
	log.Info("worker started")

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	wrkr.Shutdown()
	log.Info("worker shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
