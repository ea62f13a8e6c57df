package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/simosh/storefront/internal/app"
	"github.com/simosh/storefront/internal/config"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	application, err := app.New(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create app")
	}

	port := cfg.Port
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		for p := port + 1; p <= port+10; p++ {
			l2, err2 := net.Listen("tcp", fmt.Sprintf(":%d", p))
			if err2 == nil {
				ln = l2
				port = p
				break
			}
		}
		if ln == nil {
			zlog.Fatal().Err(err).Msg("no free port")
		}
	}
	zlog.Info().Int("port", port).Msg("storefront listening")

	server := &http.Server{Handler: application.HTTPHandler()}
	go func() {
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			zlog.Error().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
}
