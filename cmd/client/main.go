package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.temporal.io/sdk/client"

	"audio-briefing/src/briefing"
	"audio-briefing/src/config"
	"audio-briefing/src/core"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/gateway"
	"audio-briefing/src/i18n"
	"audio-briefing/src/workflows"
)

// Submits one sample briefing through the worker, for checking relay templates end to end
func main() {
	name := flag.String("name", "Test Klant", "customer name")
	email := flag.String("email", "", "customer email (receives the confirmation)")
	phone := flag.String("phone", "+31 6 12345678", "customer phone")
	service := flag.String("service", domain.ServiceStudio, "service code")
	timeout := flag.Duration("timeout", time.Minute, "how long to wait for the workflow")
	flag.Parse()

	if *email == "" {
		log.Fatalln("-email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalln("Unable to load configuration", err)
	}
	logger := core.NewLogger(cfg.LogLevel)

	c, err := client.Dial(config.TemporalClientOptions(cfg.Temporal, core.NewTemporalLogger(logger)))
	if err != nil {
		log.Fatalln("Unable to create client", err)
	}
	defer c.Close()

	def := workflows.BuildBriefingDefinition()
	answers := briefing.NewAnswers(def.Defaults)
	answers.Set(domain.FieldKey(domain.FieldService), briefing.TextValue(*service))
	answers.Set(domain.FieldKey(domain.FieldOtherDescription), briefing.TextValue("Smoke test submission"))
	answers.Set(domain.FieldKey(domain.FieldContactName), briefing.TextValue(*name))
	answers.Set(domain.FieldKey(domain.FieldContactEmail), briefing.TextValue(*email))
	answers.Set(domain.FieldKey(domain.FieldContactPhone), briefing.TextValue(*phone))

	dispatcher := gateway.NewTemporalDispatcher(c, cfg.Temporal.TaskQueue, logger)
	gw := gateway.New(def, i18n.Default().Printer(cfg.Locale), dispatcher, gateway.Options{
		Relay:           cfg.Relay,
		Operator:        cfg.Operator,
		ActivityTimeout: cfg.Temporal.ActivityTimeout,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Println("Submitting sample briefing...")
	if err := gw.Submit(ctx, "smoke-test", answers); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Fatalln("Timeout: submission workflow did not finish in time")
		}
		log.Fatalln("Submission failed:", err)
	}
	log.Println("Both emails sent")
}
