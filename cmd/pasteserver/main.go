// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is the entry point for the paste service's HTTP API: it
// wires the store, proof-of-work, and lifecycle components together,
// starts the public listener and, if configured, a separate metrics
// listener, and shuts both down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"emberbin/internal/paste/config"
	"emberbin/internal/paste/httpapi"
	"emberbin/internal/paste/lifecycle"
	"emberbin/internal/paste/logging"
	"emberbin/internal/paste/pow"
	"emberbin/internal/paste/store"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.Setup("pasteserver", cfg.LogLevel)

	redisClient, err := store.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("connect to redis: %v", err)
	}
	adapter := store.New(redisClient)

	protocol, err := pow.New(adapter)
	if err != nil {
		log.Fatalf("initialize proof-of-work protocol: %v", err)
	}

	lc := lifecycle.New(adapter)
	server := httpapi.NewServer(lc, protocol, adapter, logger)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Router(httpapi.CORSConfig{AllowedOrigin: cfg.FrontendURL}),
	}

	go func() {
		logger.Info("paste service listening", slog.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("paste service: %v", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			logger.Info("metrics listening", slog.String("addr", cfg.MetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("metrics server: %v", err)
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("paste service shutdown: %v", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			log.Fatalf("metrics server shutdown: %v", err)
		}
	}
	logger.Info("stopped")
}
