// README: Entry point; loads config, wires collaborators, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saina/internal/ai"
	"saina/internal/config"
	httptransport "saina/internal/http"
	"saina/internal/infra"
	applog "saina/internal/log"
	"saina/internal/modules/catalog"
	"saina/internal/modules/dialogue"
	"saina/internal/modules/reservation"
	"saina/internal/modules/session"
	"saina/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	applog.Configure(applog.Config{Level: cfg.Log.Level})
	logger := applog.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gemini, err := ai.NewGemini(ctx, cfg.AI.GeminiKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("gemini init")
	}
	defer gemini.Close()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("db init")
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	sessionStore := session.NewStore(redisClient, cfg.SessionTTL)
	catalogClient := catalog.NewClient(cfg.Catalog.FlightWebhookURL, cfg.Catalog.HotelWebhookURL, cfg.CallTimeout)
	telegramClient := telegram.NewClient(cfg.Telegram.BotToken, cfg.CallTimeout)

	reservationStore := reservation.NewStore(dbPool)
	finalizer := reservation.NewFinalizer(
		reservationStore,
		cfg.Reservation.LogWebhookURL,
		telegramClient,
		cfg.Telegram.AgentChatID,
		cfg.CallTimeout,
	)

	dialogueSvc := dialogue.NewService(sessionStore, gemini, catalogClient, finalizer, cfg.CallTimeout)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Dialogue: dialogueSvc,
		Replier:  telegramClient,
		BotToken: cfg.Telegram.BotToken,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", cfg.HTTP.Addr).Msg("listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server")
	}
}
