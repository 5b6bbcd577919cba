package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"audio-briefing/src/config"
	"audio-briefing/src/core"
	"audio-briefing/src/register"
	"audio-briefing/src/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln("Unable to load configuration", err)
	}
	logger := core.NewLogger(cfg.LogLevel)

	// Local development only; Cloud namespaces register attributes out of band
	if cfg.Temporal.APIKey == "" {
		if err := core.RegisterSearchAttributesIfNeeded(context.Background(), cfg.Temporal.HostPort, cfg.Temporal.Namespace, logger); err != nil {
			log.Printf("WARNING: %v", err)
			log.Println("Register it manually: temporal operator search-attribute create --name BriefingProjectType --type Keyword")
		}
	}

	// Create Temporal client with filtered logger
	options := config.TemporalClientOptions(cfg.Temporal, core.NewTemporalLogger(logger))
	options.Identity = fmt.Sprintf("briefing-worker-%s", uuid.New().String())
	c, err := client.Dial(options)
	if err != nil {
		log.Fatalln("Unable to create client", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	relay := services.NewEmailRelay(cfg.Relay.RelayOptions())
	if err := register.RegisterWorker(w, core.NewDeps(relay, logger)); err != nil {
		log.Fatalln("Unable to register worker", err)
	}

	log.Printf("Worker started, listening on task queue: %s", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalln("Unable to start worker", err)
	}
}
