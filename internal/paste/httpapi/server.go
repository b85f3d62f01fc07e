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

// Package httpapi implements the public-facing HTTP server for the paste
// service: it maps transport requests onto the PoW and lifecycle
// components through the admission limiter, and translates the error
// taxonomy into HTTP responses.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"emberbin/internal/paste/admission"
	"emberbin/internal/paste/lifecycle"
	"emberbin/internal/paste/pow"
)

const maxBodyBytes = 1024*1024 + 512*1024 // 1.5 MiB, per spec.md §4.5

const (
	readPermitCap      = 50
	challengePermitCap = 100
)

// pinger is the narrow surface handleHealthz needs from the store adapter.
type pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the components the request surface wires together.
type Server struct {
	lifecycle  *lifecycle.Lifecycle
	protocol   *pow.Protocol
	store      pinger
	reads      *admission.Limiter
	challenges *admission.Limiter
	log        *slog.Logger
}

// NewServer builds a Server over the given lifecycle, PoW protocol, and
// store adapter (used only for the /healthz reachability probe).
func NewServer(lc *lifecycle.Lifecycle, protocol *pow.Protocol, store pinger, log *slog.Logger) *Server {
	return &Server{
		lifecycle:  lc,
		protocol:   protocol,
		store:      store,
		reads:      admission.NewLimiter(readPermitCap),
		challenges: admission.NewLimiter(challengePermitCap),
		log:        log,
	}
}

// Router builds the chi router exposing the paste service's HTTP surface,
// with CORS and request logging applied ahead of every route and a
// body-size cap applied to the create endpoint.
func (s *Server) Router(corsCfg CORSConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(cors(corsCfg))
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/challenge", s.handleGetChallenge)
		r.With(s.limitBody).Post("/paste", s.handleCreatePaste)
		r.Get("/paste/{id}", s.handleGetPaste)
		r.Get("/paste/{id}/metadata", s.handleGetMetadata)
		r.Delete("/paste/{id}", s.handleDeletePaste)
	})

	return r
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
