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
	"log/slog"
	"net/http"

	"emberbin/internal/paste/apperr"
)

// writeError maps an error onto the fixed status/body pair from spec.md §4.5.
// The cause, if any, is logged locally and never reaches the response body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.As(err)
	if ae.Cause != nil {
		s.log.Error("request failed", slog.String("path", r.URL.Path), slog.Any("cause", ae.Cause))
	}
	writeJSON(w, ae.Status(), map[string]string{"error": ae.Message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
