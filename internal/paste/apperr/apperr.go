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

// Package apperr defines the fixed taxonomy of errors the paste service's
// request surface can return, and maps each kind onto an HTTP status and a
// stable, client-visible message. Internal causes are carried for local
// diagnostics but are never serialized into a response.
package apperr

import "net/http"

// Kind is one of the fixed error kinds the request surface understands.
type Kind int

const (
	KindNone Kind = iota
	KindPasteNotFound
	KindUnauthorized
	KindBadRequest
	KindConflict
	KindTooManyRequests
	KindInternal
)

// Error is the typed error returned by every paste-service operation.
// It carries a stable, client-safe Message and an optional Cause used only
// for local diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "error"
}

func (e *Error) Unwrap() error { return e.Cause }

// NotFound returns the fixed "paste not found" error.
func NotFound() *Error {
	return &Error{Kind: KindPasteNotFound, Message: "Paste not found"}
}

// Unauthorized returns an Unauthorized error with the given client-visible message.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// BadRequest returns a BadRequest error with the given client-visible message.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// Conflict returns a Conflict error with the given client-visible message.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// TooManyRequests returns the fixed "server busy" error.
func TooManyRequests() *Error {
	return &Error{Kind: KindTooManyRequests, Message: "Server busy, please try again later"}
}

// Internal wraps cause as an InternalServerError. cause is never exposed to
// the client; it is attached only so the caller can log it locally.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Cause: cause}
}

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindPasteNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// As converts any error into *Error, collapsing unrecognized errors to
// InternalServerError per the "store or serialization failure is always
// InternalServerError" rule.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*Error); ok {
		return ae
	}
	return Internal(err)
}
