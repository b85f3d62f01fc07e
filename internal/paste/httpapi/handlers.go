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

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"emberbin/internal/paste/apperr"
	"emberbin/internal/paste/metrics"
	"emberbin/internal/paste/model"
	"emberbin/internal/paste/pow"
)

// handleGetChallenge issues a fresh proof-of-work challenge, gated by the
// challenge admission limiter so a burst of clients cannot pin the server
// issuing challenges it will never see solutions for.
func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	if !s.challenges.Acquire() {
		metrics.AdmissionRejections.WithLabelValues("challenge").Inc()
		s.writeError(w, r, apperr.TooManyRequests())
		return
	}
	defer func() {
		s.challenges.Release()
		metrics.AdmissionInFlight.WithLabelValues("challenge").Set(float64(s.challenges.InUse()))
	}()
	metrics.AdmissionInFlight.WithLabelValues("challenge").Set(float64(s.challenges.InUse()))

	challenge, err := s.protocol.Issue()
	if err != nil {
		s.writeError(w, r, apperr.Internal(err))
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// handleCreatePaste verifies the client's proof-of-work solution, then
// creates the paste. Admission is not limited here: proof-of-work is
// itself the cost gate for this endpoint.
func (s *Server) handleCreatePaste(w http.ResponseWriter, r *http.Request) {
	sol := pow.Solution{
		Salt:      r.Header.Get("X-PoW-Salt"),
		Nonce:     r.Header.Get("X-PoW-Nonce"),
		Timestamp: r.Header.Get("X-PoW-Timestamp"),
		Signature: r.Header.Get("X-PoW-Signature"),
	}
	if err := s.protocol.Verify(r.Context(), sol); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req model.CreatePasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperr.BadRequest("Malformed request body"))
		return
	}

	id, err := s.lifecycle.Create(r.Context(), &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.CreatePasteResponse{ID: id})
}

// handleGetPaste reads a paste, gated by the read admission limiter since a
// read can trigger a write-back (view increment or burn scheduling).
func (s *Server) handleGetPaste(w http.ResponseWriter, r *http.Request) {
	if !s.reads.Acquire() {
		metrics.AdmissionRejections.WithLabelValues("read").Inc()
		s.writeError(w, r, apperr.TooManyRequests())
		return
	}
	defer func() {
		s.reads.Release()
		metrics.AdmissionInFlight.WithLabelValues("read").Set(float64(s.reads.InUse()))
	}()
	metrics.AdmissionInFlight.WithLabelValues("read").Set(float64(s.reads.InUse()))

	id := chi.URLParam(r, "id")
	paste, err := s.lifecycle.Read(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paste)
}

// handleGetMetadata probes a paste's existence and shape without consuming
// it; it does not touch the admission limiter since it never mutates state.
func (s *Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	meta, err := s.lifecycle.Metadata(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// handleDeletePaste deletes a paste, authorizing burn-token deletes via the
// X-Burn-Token header.
func (s *Server) handleDeletePaste(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	burnToken := r.Header.Get("X-Burn-Token")
	if err := s.lifecycle.Delete(r.Context(), id, burnToken); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
