package config

import (
	"crypto/tls"
	"log"

	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
)

// TemporalClientOptions builds client.Options for either local development or Temporal Cloud
// Additional options like Identity can be set after calling this function
func TemporalClientOptions(cfg TemporalConfig, logger tlog.Logger) client.Options {
	hostPort := cfg.HostPort
	if hostPort == "" {
		hostPort = client.DefaultHostPort // localhost:7233
	}

	// Without sensitive data
	log.Printf("Temporal client config - HostPort: %s, Namespace: %s, HasAPIKey: %v",
		hostPort, cfg.Namespace, cfg.APIKey != "")

	clientOptions := client.Options{
		HostPort: hostPort,
		Logger:   logger,
	}

	if cfg.Namespace != "" {
		clientOptions.Namespace = cfg.Namespace
	}

	// TLS and API key credentials for Temporal Cloud
	if cfg.APIKey != "" {
		clientOptions.ConnectionOptions = client.ConnectionOptions{
			TLS: &tls.Config{},
		}
		clientOptions.Credentials = client.NewAPIKeyStaticCredentials(cfg.APIKey)
	}

	return clientOptions
}
