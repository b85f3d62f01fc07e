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

// Package metrics registers the process-level Prometheus series emitted by
// the paste service. Series are registered once at package init and
// incremented from clearly named call sites in pow, lifecycle and httpapi.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PoWChallengesIssued counts every challenge handed out by GET /challenge.
	PoWChallengesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pow_challenges_issued_total",
		Help: "Total number of proof-of-work challenges issued.",
	})

	// PoWVerifications counts verification outcomes by terminal branch.
	PoWVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pow_verifications_total",
		Help: "Total proof-of-work verifications, labeled by outcome.",
	}, []string{"outcome"})

	// PastesCreated counts successful paste creations.
	PastesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastes_created_total",
		Help: "Total number of pastes created.",
	})

	// PastesRead counts successful reads, labeled by whether the read
	// incremented the view counter or scheduled a burn.
	PastesRead = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pastes_read_total",
		Help: "Total number of paste reads, labeled by branch.",
	}, []string{"branch"})

	// PastesDeleted counts successful deletions, labeled by authorization path.
	PastesDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pastes_deleted_total",
		Help: "Total number of paste deletions, labeled by reason.",
	}, []string{"reason"})

	// AdmissionRejections counts non-blocking limiter rejections by kind.
	AdmissionRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admission_rejections_total",
		Help: "Total number of requests rejected by the admission limiter, labeled by kind.",
	}, []string{"kind"})

	// AdmissionInFlight gauges the current number of held permits, by kind.
	AdmissionInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "admission_in_flight",
		Help: "Current number of held admission permits, labeled by kind.",
	}, []string{"kind"})
)
