// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry exposes search.Info as OpenTelemetry metric
// instruments (SPEC_FULL.md §2: "the 'time management feedback' and
// stats-reporting half of C6 made observable"). harrier registers
// against whatever MeterProvider the process was configured with
// (otel.GetMeterProvider by default, a no-op until cmd/harrier installs
// a real exporter), so importing this package costs nothing when no
// exporter is wired.
package telemetry

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Reporter records search progress as OTel instruments.
type Reporter struct {
	nodes    metric.Int64Counter
	depth    metric.Int64Gauge
	selDepth metric.Int64Gauge
	score    metric.Int64Gauge
	nps      metric.Int64Gauge
	hashFull metric.Int64Gauge

	lastNodes atomic.Uint64
}

// NewReporter creates instruments on the given meter name, pulling the
// active MeterProvider from the global otel registry.
func NewReporter(meterName string) (*Reporter, error) {
	meter := otel.Meter(meterName)

	nodes, err := meter.Int64Counter("harrier.search.nodes",
		metric.WithDescription("total nodes searched"))
	if err != nil {
		return nil, err
	}
	depth, err := meter.Int64Gauge("harrier.search.depth",
		metric.WithDescription("completed iterative-deepening depth"))
	if err != nil {
		return nil, err
	}
	selDepth, err := meter.Int64Gauge("harrier.search.seldepth",
		metric.WithDescription("maximum selective search depth reached"))
	if err != nil {
		return nil, err
	}
	score, err := meter.Int64Gauge("harrier.search.score_centipawns",
		metric.WithDescription("root score in centipawns, from side to move's POV"))
	if err != nil {
		return nil, err
	}
	nps, err := meter.Int64Gauge("harrier.search.nps",
		metric.WithDescription("nodes searched per second"))
	if err != nil {
		return nil, err
	}
	hashFull, err := meter.Int64Gauge("harrier.search.hashfull",
		metric.WithDescription("transposition table occupancy, permille"))
	if err != nil {
		return nil, err
	}

	return &Reporter{
		nodes:    nodes,
		depth:    depth,
		selDepth: selDepth,
		score:    score,
		nps:      nps,
		hashFull: hashFull,
	}, nil
}

// Observe records one search.Info snapshot. totalNodes is the
// cumulative node count the driver has searched so far this move; the
// fields are passed individually rather than as a search.Info value so
// this package doesn't need to import search (it is wired from
// cmd/harrier, which imports both).
func (r *Reporter) Observe(ctx context.Context, depth, selDepth, hashFull int, score int32, totalNodes, nps uint64) {
	prev := r.lastNodes.Swap(totalNodes)
	if totalNodes > prev {
		r.nodes.Add(ctx, int64(totalNodes-prev))
	}
	r.depth.Record(ctx, int64(depth))
	r.selDepth.Record(ctx, int64(selDepth))
	r.score.Record(ctx, int64(score))
	r.nps.Record(ctx, int64(nps))
	r.hashFull.Record(ctx, int64(hashFull))
}

// ResetMove clears the node-delta baseline, called at the start of a
// new search so the first Observe of a move doesn't under-count.
func (r *Reporter) ResetMove() { r.lastNodes.Store(0) }
