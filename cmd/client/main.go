// Command client is a small command-line client for the accounts service.
//
// Usage:
//
//	client [-a address] [-t token] <command> [arguments]
//
// Commands: version, login <email> <password>, me, refresh,
// create <email> <password> [role], get <id>, list [offset [limit]],
// disable <id>, enable <id>, delete <id>.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/caarlos0/env/v11"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

type clientConfig struct {
	Address  string        `env:"ACCOUNTS_ADDRESS" envDefault:"localhost:8080"`
	Token    string        `env:"ACCOUNTS_TOKEN"`
	Timeout  time.Duration `env:"ACCOUNTS_TIMEOUT" envDefault:"10s"`
	LogLevel string        `env:"ACCOUNTS_LOG_LEVEL" envDefault:"warn"`
}

func main() {
	// stdout carries command results
	log := logger.NewLoggerWithWriter(os.Stderr, "accounts-client")

	var cfg clientConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("error parsing environment")
	}

	flag.StringVar(&cfg.Address, "a", cfg.Address, "accounts server address")
	flag.StringVar(&cfg.Token, "t", cfg.Token, "bearer token for authorized commands")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Build version: %s (%s, %s)\n", orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <command> [arguments]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "minimum log level")
	flag.Parse()

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	client, err := adapter.NewHTTPAccountsClient(cfg.Address, cfg.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client")
	}
	client.SetToken(cfg.Token)

	if err = run(context.Background(), client, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
