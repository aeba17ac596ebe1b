// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package health reports whether configuration is being served from
// an up to date source.
package health

import (
	"context"
	"sync"
)

// Metric represents anything that can report its health status.
type Metric interface {
	Healthy(context.Context) bool
}

// Status is a Metric which is healthy until an error is recorded.
// The zero value is healthy.
type Status struct {
	mu  sync.Mutex
	err error
}

// Record stores the outcome of the latest attempt. A nil err makes
// the Status healthy again.
func (s *Status) Record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Err returns the error of the latest attempt, if it failed.
func (s *Status) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Healthy implements the Metric interface.
func (s *Status) Healthy(ctx context.Context) bool {
	return s.Err() == nil
}

// AndMetric represents multiple Metrics all and'd together.
type AndMetric struct {
	metrics []Metric
}

// And returns a Metric where all the underlying Metrics healthy
// states are joined together via the logical and (&&) operator.
func And(metrics ...Metric) AndMetric {
	return AndMetric{
		metrics: metrics,
	}
}

// Healthy implements the Metric interface.
func (m AndMetric) Healthy(ctx context.Context) bool {
	for _, metric := range m.metrics {
		if !metric.Healthy(ctx) {
			return false
		}
	}
	return true
}
