// Package model provides the public API for opening IFC models.
// This package exposes factory functions while keeping the handle and
// engine implementations internal.
//
// Example:
//
//	m, err := model.New(model.NewSnapshotEngine(), types.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if _, err := m.Open(ctx, data); err != nil {
//	    return err
//	}
//	defer m.Close()
//	walls, err := m.GetElementsOfType("IfcWall")
package model

import (
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/ifcmodel/internal/metrics"
	"github.com/mesh-intelligence/ifcmodel/internal/model"
	"github.com/mesh-intelligence/ifcmodel/internal/snapshot"
	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// Option configures a Model.
type Option = model.Option

// Recorder holds the Prometheus counters a Model can update.
type Recorder = metrics.Recorder

// New creates a Model over engine with no open model.
func New(engine types.Engine, config types.Config, opts ...Option) (types.Model, error) {
	return model.New(engine, config, opts...)
}

// NewSnapshotEngine returns the JSON snapshot engine.
func NewSnapshotEngine() types.Engine {
	return snapshot.New()
}

// WithLogger sets the Model's logger.
func WithLogger(logger logr.Logger) Option {
	return model.WithLogger(logger)
}

// NewRecorder creates the Model counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	return metrics.NewRecorder(reg)
}

// WithMetrics records engine calls and enumeration outcomes on r.
func WithMetrics(r *Recorder) Option {
	return model.WithMetrics(r)
}
