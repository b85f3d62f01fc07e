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

// Package lifecycle implements the paste state machine: atomic creation,
// view-counted or burn-scheduled reads, token-authorized deletion, and the
// non-consuming metadata probe.
package lifecycle

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"emberbin/internal/paste/apperr"
	"emberbin/internal/paste/metrics"
	"emberbin/internal/paste/model"
)

const (
	defaultTTLSeconds = 30 * 24 * 60 * 60 // 30 days
	maxTTLSeconds     = 30 * 24 * 60 * 60 // 30 days
	burnGraceSeconds  = 90
)

// Store is the narrow persistence surface the lifecycle needs; it is
// satisfied by *store.Adapter in production and a fake in tests.
type Store interface {
	CreateIfAbsent(ctx context.Context, key, value string, ttlSeconds int64) (bool, error)
	Get(ctx context.Context, key string) (string, bool, error)
	UpdatePreservingTTL(ctx context.Context, key, value string) error
	SetTTL(ctx context.Context, key string, ttlSeconds int64) error
	Delete(ctx context.Context, key string) error
}

// Clock abstracts wall-clock reads so tests can pin "now".
type Clock func() int64 // milliseconds since epoch

// Lifecycle implements create/read/delete/metadata over a Store.
type Lifecycle struct {
	store Store
	now   Clock
}

// New builds a Lifecycle over the given Store, using the real wall clock.
func New(s Store) *Lifecycle {
	return &Lifecycle{store: s, now: defaultClock}
}

func defaultClock() int64 { return nowMillis() }

func pasteKey(id string) string { return "paste:" + id }

// Create validates the request, computes the effective TTL, generates a
// UUIDv4 id, and performs a conditional create that never overwrites an
// existing key. The caller is responsible for proof-of-work verification
// before calling Create.
func (l *Lifecycle) Create(ctx context.Context, req *model.CreatePasteRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	req.Sanitize()

	ttl, err := effectiveTTL(req.ExpiresAt, l.now())
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	paste := model.Paste{
		ID:            id,
		IV:            req.IV,
		Data:          req.Data,
		CreatedAt:     req.CreatedAt,
		ExpiresAt:     req.ExpiresAt,
		BurnAfterRead: req.BurnAfterRead,
		Views:         req.Views,
		HasPassword:   req.HasPassword,
		Salt:          req.Salt,
		EncryptedKey:  req.EncryptedKey,
		KeyIV:         req.KeyIV,
		BurnTokenHash: req.BurnTokenHash,
	}

	buf, err := json.Marshal(paste)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("lifecycle: marshal paste: %w", err))
	}

	created, err := l.store.CreateIfAbsent(ctx, pasteKey(id), string(buf), ttl)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("lifecycle: create paste: %w", err))
	}
	if !created {
		return "", apperr.Conflict("Paste ID already exists")
	}

	metrics.PastesCreated.Inc()
	return id, nil
}

// effectiveTTL computes the TTL in seconds per spec.md §4.4 step 4: an
// explicit positive expiresAt bounds the TTL (and must lie at least one
// whole second in the future),
// otherwise the default 30-day TTL applies; either way the result is
// clamped to 30 days.
func effectiveTTL(expiresAt *int64, nowMs int64) (int64, error) {
	if expiresAt == nil || *expiresAt <= 0 {
		return maxTTLSeconds, nil
	}
	ttl := (*expiresAt - nowMs) / 1000
	if ttl <= 0 {
		return 0, apperr.BadRequest("Paste already expired")
	}
	if ttl > maxTTLSeconds {
		ttl = maxTTLSeconds
	}
	return ttl, nil
}

// Read fetches a paste by id. If it is burn-after-read and has no
// password, it schedules deletion (a short grace TTL) instead of deleting
// immediately and does not increment views. Otherwise it increments views
// and rewrites the record while preserving the residual TTL.
func (l *Lifecycle) Read(ctx context.Context, id string) (model.Paste, error) {
	raw, ok, err := l.store.Get(ctx, pasteKey(id))
	if err != nil {
		return model.Paste{}, apperr.Internal(fmt.Errorf("lifecycle: get paste: %w", err))
	}
	if !ok {
		return model.Paste{}, apperr.NotFound()
	}

	var paste model.Paste
	if err := json.Unmarshal([]byte(raw), &paste); err != nil {
		return model.Paste{}, apperr.Internal(fmt.Errorf("lifecycle: unmarshal paste: %w", err))
	}

	if paste.BurnAfterRead && !paste.HasPassword {
		if err := l.store.SetTTL(ctx, pasteKey(id), burnGraceSeconds); err != nil {
			return model.Paste{}, apperr.Internal(fmt.Errorf("lifecycle: schedule burn: %w", err))
		}
		metrics.PastesRead.WithLabelValues("burn").Inc()
		return paste, nil
	}

	paste.Views++
	buf, err := json.Marshal(paste)
	if err != nil {
		return model.Paste{}, apperr.Internal(fmt.Errorf("lifecycle: marshal paste: %w", err))
	}
	if err := l.store.UpdatePreservingTTL(ctx, pasteKey(id), string(buf)); err != nil {
		return model.Paste{}, apperr.Internal(fmt.Errorf("lifecycle: update paste: %w", err))
	}

	metrics.PastesRead.WithLabelValues("count").Inc()
	return paste, nil
}

// Metadata returns the non-sensitive probe projection. Absent pastes
// produce a zero-valued Metadata with Exists false — the server cannot
// tell "never existed" apart from "expired", so it does not try to.
func (l *Lifecycle) Metadata(ctx context.Context, id string) (model.Metadata, error) {
	raw, ok, err := l.store.Get(ctx, pasteKey(id))
	if err != nil {
		return model.Metadata{}, apperr.Internal(fmt.Errorf("lifecycle: get paste: %w", err))
	}
	if !ok {
		return model.Metadata{}, nil
	}

	var paste model.Paste
	if err := json.Unmarshal([]byte(raw), &paste); err != nil {
		return model.Metadata{}, apperr.Internal(fmt.Errorf("lifecycle: unmarshal paste: %w", err))
	}

	return model.Metadata{
		Exists:        true,
		HasPassword:   paste.HasPassword,
		BurnAfterRead: paste.BurnAfterRead,
		CreatedAt:     paste.CreatedAt,
		ExpiresAt:     paste.ExpiresAt,
	}, nil
}

// Delete removes a paste by id. If the paste is burn-after-read and
// carries a burn-token hash, the caller must supply a burn token whose
// SHA-256 matches the stored hash, compared in constant time. Non-burn
// pastes, and burn pastes without a stored hash, are deletable without a
// token.
func (l *Lifecycle) Delete(ctx context.Context, id, burnToken string) error {
	raw, ok, err := l.store.Get(ctx, pasteKey(id))
	if err != nil {
		return apperr.Internal(fmt.Errorf("lifecycle: get paste: %w", err))
	}
	if !ok {
		return apperr.NotFound()
	}

	var paste model.Paste
	if err := json.Unmarshal([]byte(raw), &paste); err != nil {
		return apperr.Internal(fmt.Errorf("lifecycle: unmarshal paste: %w", err))
	}

	reason := "explicit"
	if paste.BurnAfterRead && paste.BurnTokenHash != nil {
		reason = "burn_token"
		sum := sha256.Sum256([]byte(burnToken))
		provided := hex.EncodeToString(sum[:])
		if subtle.ConstantTimeCompare([]byte(provided), []byte(*paste.BurnTokenHash)) != 1 {
			return apperr.Unauthorized("Invalid burn token")
		}
	}

	if err := l.store.Delete(ctx, pasteKey(id)); err != nil {
		return apperr.Internal(fmt.Errorf("lifecycle: delete paste: %w", err))
	}

	metrics.PastesDeleted.WithLabelValues(reason).Inc()
	return nil
}
