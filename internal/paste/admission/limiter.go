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

// Package admission bounds the parallelism of expensive endpoints with a
// non-blocking, permit-counted limiter.
//
// The engine follows the vector-scalar accumulator pattern for budget
// tracking: a stable scalar (the capacity) and a
// volatile vector (units currently held). Here the vector is never
// committed anywhere — a permit is acquired for the lifetime of one
// request and released on every exit path, so the vector always returns
// to zero between bursts.
package admission

import "sync"

// Limiter is a thread-safe, in-memory, non-blocking admission gate.
// Available = Capacity - InUse; Acquire fails immediately rather than
// blocking when no permits remain.
type Limiter struct {
	capacity int64
	inUse    int64
	mu       sync.Mutex
}

// NewLimiter creates a Limiter with the given fixed capacity.
func NewLimiter(capacity int64) *Limiter {
	return &Limiter{capacity: capacity}
}

// Acquire attempts to take one permit. It never blocks: if the limiter is
// already at capacity it returns false immediately.
func (l *Limiter) Acquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inUse >= l.capacity {
		return false
	}
	l.inUse++
	return true
}

// Release returns one permit to the limiter. It is safe, and a no-op, to
// call Release more times than Acquire succeeded — the in-use count never
// goes negative. Callers release unconditionally via defer so a permit is
// never leaked on an error or cancellation path.
func (l *Limiter) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inUse > 0 {
		l.inUse--
	}
}

// InUse reports the current number of held permits, for metrics gauges.
func (l *Limiter) InUse() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inUse
}

// Capacity reports the limiter's fixed capacity.
func (l *Limiter) Capacity() int64 {
	return l.capacity
}
