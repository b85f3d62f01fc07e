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

// Package model defines the paste record's wire and persisted shape, and
// the bounds-checking applied to create requests.
package model

import "github.com/go-playground/validator/v10"

// Paste is both the persisted record (keyed by paste:{id}) and the JSON
// shape returned to clients. All server-derived fields (Id, Views) live
// alongside the opaque, client-encrypted fields (Iv, Data, Salt, ...); the
// server never interprets the opaque fields beyond their length.
type Paste struct {
	ID             string  `json:"id"`
	IV             string  `json:"iv"`
	Data           string  `json:"data"`
	CreatedAt      int64   `json:"createdAt"`
	ExpiresAt      *int64  `json:"expiresAt,omitempty"`
	BurnAfterRead  bool    `json:"burnAfterRead"`
	Views          int64   `json:"views"`
	HasPassword    bool    `json:"hasPassword"`
	Salt           *string `json:"salt,omitempty"`
	EncryptedKey   *string `json:"encryptedKey,omitempty"`
	KeyIV          *string `json:"keyIv,omitempty"`
	BurnTokenHash  *string `json:"burnTokenHash,omitempty"`
}

// CreatePasteRequest is the decoded JSON body of POST /api/v1/paste.
// Language is accepted for compatibility with older clients and dropped
// after validation; the server never persists it.
type CreatePasteRequest struct {
	IV            string  `json:"iv" validate:"max=512"`
	Data          string  `json:"data" validate:"required"`
	CreatedAt     int64   `json:"createdAt"`
	ExpiresAt     *int64  `json:"expiresAt,omitempty"`
	BurnAfterRead bool    `json:"burnAfterRead"`
	Views         int64   `json:"views"`
	HasPassword   bool    `json:"hasPassword"`
	Salt          *string `json:"salt,omitempty" validate:"omitempty,max=512"`
	EncryptedKey  *string `json:"encryptedKey,omitempty" validate:"omitempty,max=512"`
	KeyIV         *string `json:"keyIv,omitempty" validate:"omitempty,max=512"`
	BurnTokenHash *string `json:"burnTokenHash,omitempty"`
	Language      *string `json:"language,omitempty" validate:"omitempty,max=64"`
}

// CreatePasteResponse is the JSON body returned by a successful create.
type CreatePasteResponse struct {
	ID string `json:"id"`
}

// Metadata is the non-sensitive probe projection returned by the metadata
// endpoint. Absent pastes are represented by a zero-valued Metadata with
// Exists false — the server cannot distinguish "never existed" from
// "expired", so it does not try to.
type Metadata struct {
	Exists        bool   `json:"exists"`
	HasPassword   bool   `json:"hasPassword"`
	BurnAfterRead bool   `json:"burnAfterRead"`
	CreatedAt     int64  `json:"createdAt"`
	ExpiresAt     *int64 `json:"expiresAt,omitempty"`
}

var validate = validator.New()

// Validate enforces spec's bounds: Data non-empty, and each opaque string
// field capped at 512 characters. IV reuses the same cap via its own tag.
func (r *CreatePasteRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return translateValidationError(err)
	}
	return nil
}

// translateValidationError turns the first validator failure into the
// exact client-visible message spec.md's scenarios expect.
func translateValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errInvalidRequest
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Data":
		return errEmptyData
	case "IV":
		return errFieldTooLong("IV")
	case "Salt":
		return errFieldTooLong("Salt")
	case "EncryptedKey":
		return errFieldTooLong("Encrypted key")
	case "KeyIV":
		return errFieldTooLong("Key IV")
	default:
		return errInvalidRequest
	}
}

// Sanitize drops fields the server never persists (Language) and is called
// once decoding succeeds, before the request reaches the lifecycle layer.
func (r *CreatePasteRequest) Sanitize() {
	r.Language = nil
}
