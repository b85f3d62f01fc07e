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

package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FakeClient is an in-memory Client used by tests that don't need a live
// Redis, mirroring the teacher's LoggingRedisEvaler: a stand-in adapter
// selectable without external infrastructure.
type FakeClient struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

// NewFakeClient returns an empty FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (f *FakeClient) expiredLocked(key string) bool {
	exp, ok := f.expires[key]
	if !ok {
		return false
	}
	return !exp.IsZero() && time.Now().After(exp)
}

func (f *FakeClient) deleteIfExpiredLocked(key string) {
	if f.expiredLocked(key) {
		delete(f.values, key)
		delete(f.expires, key)
	}
}

func (f *FakeClient) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteIfExpiredLocked(key)
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	f.values[key] = fmt.Sprintf("%v", value)
	if ttl > 0 {
		f.expires[key] = time.Now().Add(ttl)
	} else {
		f.expires[key] = time.Time{}
	}
	return true, nil
}

func (f *FakeClient) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteIfExpiredLocked(key)
	v, ok := f.values[key]
	if !ok {
		return "", false, nil
	}
	return v, true, nil
}

func (f *FakeClient) SetKeepTTL(ctx context.Context, key string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteIfExpiredLocked(key)
	f.values[key] = fmt.Sprintf("%v", value)
	return nil
}

func (f *FakeClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		return nil
	}
	f.expires[key] = time.Now().Add(ttl)
	return nil
}

func (f *FakeClient) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	delete(f.expires, key)
	return nil
}

func (f *FakeClient) Ping(ctx context.Context) error {
	return nil
}

// TTL returns the remaining TTL for key, for assertions in tests. A zero
// duration means no expiry is set; ok is false if the key is absent.
func (f *FakeClient) TTL(key string) (ttl time.Duration, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.values[key]; !exists {
		return 0, false
	}
	exp, hasExp := f.expires[key]
	if !hasExp || exp.IsZero() {
		return 0, true
	}
	return time.Until(exp), true
}
