package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"

	"audio-briefing/src/briefing"
	"audio-briefing/src/config"
	"audio-briefing/src/core"
	"audio-briefing/src/gateway"
	"audio-briefing/src/i18n"
	"audio-briefing/src/server"
	"audio-briefing/src/services"
	"audio-briefing/src/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln("Unable to load configuration", err)
	}
	logger := core.NewLogger(cfg.LogLevel)

	if !cfg.Relay.Configured() {
		log.Println("WARNING: email relay is not fully configured; submissions will end on the error step")
	}

	def := workflows.BuildBriefingDefinition()
	bundle := i18n.Default()

	// Submission dispatcher: in-process relay calls or the Temporal workflow
	var dispatcher gateway.Dispatcher
	switch cfg.Dispatch {
	case config.DispatchTemporal:
		c, err := client.Dial(config.TemporalClientOptions(cfg.Temporal, core.NewTemporalLogger(logger)))
		if err != nil {
			log.Fatalln("Unable to create Temporal client", err)
		}
		defer c.Close()
		dispatcher = gateway.NewTemporalDispatcher(c, cfg.Temporal.TaskQueue, logger)
	default:
		relay := services.NewEmailRelay(cfg.Relay.RelayOptions())
		dispatcher = gateway.NewDirectDispatcher(core.NewDeps(relay, logger))
	}
	log.Printf("Submissions dispatched via: %s", cfg.Dispatch)

	gw := gateway.New(def, bundle.Printer(cfg.Locale), dispatcher, gateway.Options{
		Relay:           cfg.Relay,
		Operator:        cfg.Operator,
		ActivityTimeout: cfg.Temporal.ActivityTimeout,
	}, logger)
	store := briefing.NewStore(def, gw, briefing.WithLogger(logger))

	srv, err := server.New(server.Options{
		Definition:      def,
		Store:           store,
		Bundle:          bundle,
		Locale:          cfg.Locale,
		TransitionDelay: cfg.TransitionDelay,
		Logger:          logger,
	})
	if err != nil {
		log.Fatalln("Unable to create server", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go pruneSessions(ctx, store, cfg.SessionTTL)

	go func() {
		log.Printf("Server starting on %s\n", cfg.HTTPAddr)
		log.Println("Endpoints:")
		log.Println("  GET  /                      - Briefing form (HTML)")
		log.Println("  POST /briefing              - Form post with action next/back/retry/restart")
		log.Println("  GET  /api/steps             - Step catalog with schemas")
		log.Println("  GET  /api/briefing          - Current step view")
		log.Println("  PUT  /api/briefing/answers  - Set answers")
		log.Println("  POST /api/briefing/advance  - Next step or submit")
		log.Println("  POST /api/briefing/back     - Previous step")
		log.Println("  POST /api/briefing/retry    - Back to contact after a failed submission")
		log.Println("  POST /api/briefing/restart  - Start over")
		if err := srv.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalln("Server failed to start", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Server shutdown failed", err)
	}
}

// pruneSessions drops idle sessions until ctx is done
func pruneSessions(ctx context.Context, store *briefing.Store, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Prune(ttl)
		}
	}
}
