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

// Package config reads the paste service's deployment knobs from the
// environment. The protocol-level constants (PoW difficulty, TTL bounds,
// admission caps, body-size cap) are not here: they are compile-time
// invariants of the wire protocol, not deployment tuning, so they live as
// constants next to the code that enforces them.
package config

import "os"

// Config holds the environment-driven settings read at process start.
type Config struct {
	RedisURL    string
	FrontendURL string
	ListenAddr  string
	MetricsAddr string
	LogLevel    string
}

// FromEnv builds a Config from the process environment, applying the
// defaults spec.md names for each variable.
func FromEnv() Config {
	return Config{
		RedisURL:    getEnv("REDIS_URL", "redis://127.0.0.1:6379"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		ListenAddr:  getEnv("LISTEN_ADDR", "0.0.0.0:8080"),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
