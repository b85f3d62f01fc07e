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

// Package store provides a narrow, typed wrapper over the key-value store
// backing the paste service. It exposes exactly the five primitives the
// lifecycle and proof-of-work layers need, each collapsed into a single
// round trip so correctness under concurrency never depends on server-side
// locking.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the minimal surface this package needs from a Redis client.
// Implementations may wrap *redis.Client (see NewRedisClient) or a fake for
// tests.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, bool, error)
	SetKeepTTL(ctx context.Context, key string, value interface{}) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Adapter is the Store Adapter component: it translates the domain's five
// operations onto whatever Client it is given.
type Adapter struct {
	client Client
}

// New builds an Adapter over the given Client.
func New(client Client) *Adapter {
	return &Adapter{client: client}
}

// CreateIfAbsent sets key to value with the given TTL only if key does not
// already exist. It reports whether the key was created.
func (a *Adapter) CreateIfAbsent(ctx context.Context, key, value string, ttlSeconds int64) (bool, error) {
	return a.client.SetNX(ctx, key, value, time.Duration(ttlSeconds)*time.Second)
}

// Get returns the value for key, or ok=false if the key is absent. An
// absent key is never an error.
func (a *Adapter) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	return a.client.Get(ctx, key)
}

// UpdatePreservingTTL rewrites key's value in a single round trip without
// resetting or clearing its residual TTL. A non-atomic "read TTL then set
// with that TTL" is never used here: it would race against expiry and
// against a concurrent burn schedule.
func (a *Adapter) UpdatePreservingTTL(ctx context.Context, key, value string) error {
	return a.client.SetKeepTTL(ctx, key, value)
}

// SetTTL resets key's expiry to ttlSeconds from now. Used only to shorten a
// TTL for burn-on-read scheduling.
func (a *Adapter) SetTTL(ctx context.Context, key string, ttlSeconds int64) error {
	return a.client.Expire(ctx, key, time.Duration(ttlSeconds)*time.Second)
}

// Delete unconditionally removes key.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key)
}

// Ping reports whether the backing store is reachable, for the liveness probe.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// goRedisClient implements Client over a real *redis.Client, grounded on
// the teacher's narrow-interface adapters (RedisEvaler, GoRedisEvaler).
type goRedisClient struct {
	rdb *redis.Client
}

// NewRedisClient builds a Client backed by github.com/redis/go-redis/v9,
// connecting to the given Redis URL (e.g. "redis://127.0.0.1:6379").
func NewRedisClient(redisURL string) (Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &goRedisClient{rdb: redis.NewClient(opt)}, nil
}

func (c *goRedisClient) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (c *goRedisClient) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *goRedisClient) SetKeepTTL(ctx context.Context, key string, value interface{}) error {
	return c.rdb.Set(ctx, key, value, redis.KeepTTL).Err()
}

func (c *goRedisClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.rdb.Expire(ctx, key, ttl).Err()
}

func (c *goRedisClient) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

func (c *goRedisClient) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
