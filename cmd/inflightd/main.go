// Copyright Inflight.io, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/inflightio/inflight/await"
	"github.com/inflightio/inflight/config"
	"github.com/inflightio/inflight/exchange"
	"github.com/inflightio/inflight/hold"
	"github.com/inflightio/inflight/logging"
	"github.com/inflightio/inflight/monitor"
)

type options struct {
	Config   string `long:"config" description:"path to the configuration file"`
	LogLevel string `long:"log-level" description:"log level, overrides the configuration file"`
	Addr     string `long:"addr" description:"listen address (host:port), overrides the configuration file"`
}

func main() {
	// .env is optional and only sourced when present
	_ = godotenv.Load()

	opts := getCLIArgs()
	cfg := loadConfig(opts)
	logging.SetLevel(cfg.Log.Level)

	manager := await.NewManager(
		await.WithInterruptGoroutinesOnStop(cfg.Await.InterruptOnStop),
		await.WithTraceFormatter(historyTrace),
	)
	manager.Start()
	coordinator := hold.NewCoordinator(manager)

	var mon *monitor.Monitor
	if cfg.Monitor.Enabled {
		mon = monitor.NewMonitor(manager, monitor.Options{
			Every:     time.Duration(cfg.Monitor.Every),
			WarnAfter: time.Duration(cfg.Monitor.WarnAfter),
		})
		mon.Start()
	}

	addr := cfg.Server.Addr()
	if opts.Addr != "" {
		addr = opts.Addr
	}
	if err := startHTTPServer(addr, manager, coordinator, mon); err != nil {
		log.WithError(err).Fatal("inflightd exited")
	}
	log.Info("inflightd stopped")
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}
	return opts
}

func loadConfig(opts options) *config.Config {
	var cfg *config.Config
	var err error
	if opts.Config != "" {
		cfg, err = config.Load(opts.Config)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	return cfg
}

// historyTrace renders the execution history of the concrete exchange type
// for interrupt diagnostics.
func historyTrace(exch await.Exchange) (string, error) {
	concrete, ok := exch.(*exchange.Exchange)
	if !ok {
		return "", nil
	}
	return exchange.DumpHistoryTrace(concrete), nil
}
