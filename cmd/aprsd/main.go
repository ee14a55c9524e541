/*
NAME
  main.go

DESCRIPTION
  main.go is the aprsd HTTP server entry point: parse flags, build a
  logger, start the gin router built by the http package. Grounded on
  the teacher's thin cmd/<name>/main.go entry points (parse config,
  build a pipeline/server, run it, handle shutdown signals).

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package main

import (
	"context"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "github.com/kc5afs/aprsafsk/http"
	"github.com/kc5afs/aprsafsk/internal/config"
	"github.com/kc5afs/aprsafsk/internal/logging"
)

func main() {
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log := logging.New(logging.LevelFromString(cfg.LogLevel))
	log.Info("starting aprsd", "listen", cfg.ListenAddr)

	router := apphttp.NewRouter(cfg, log)
	srv := &stdhttp.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
