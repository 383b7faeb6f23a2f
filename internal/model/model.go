// Package model ties the simulator together: it owns one completed
// parameter set, the result of the most recent run, and a history store of
// per-protocol results, and dispatches run requests to the protocol engine
// and the feedback solver.
package model

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmixlab/cmix/internal/feedback"
	"github.com/cmixlab/cmix/internal/material"
	"github.com/cmixlab/cmix/internal/protocol"
)

// ErrUnknownProtocol is returned by Simulate for a protocol name outside
// the canonical set.
var ErrUnknownProtocol = errors.New("unknown protocol")

// Model is one simulation instance. Current is replaced, never merged, on
// every run; History is populated by SimulateAll. A Model is not safe for
// concurrent use and never needs to be: every operation is synchronous.
type Model struct {
	Params  *material.Params
	Current *protocol.Results
	History map[string]*protocol.Results

	engine *protocol.Engine
	solver *feedback.Solver
}

// New builds a Model from raw parameter overrides (nil or empty means all
// defaults). A nil logger discards diagnostics.
func New(raw map[string]float64, logger *slog.Logger) (*Model, error) {
	p, err := material.New(raw)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	return &Model{
		Params:  p,
		History: make(map[string]*protocol.Results),
		engine:  protocol.NewEngine(p, logger),
		solver:  feedback.NewSolver(p, logger),
	}, nil
}

// Simulate runs one protocol, optionally piping the result through the
// mechanical-feedback solver, and installs it as the current result. An
// unknown name fails before any state is touched.
func (m *Model) Simulate(name string, withFeedback bool) (*protocol.Results, error) {
	switch name {
	case protocol.Constant, protocol.Linear, protocol.Cyclic:
	default:
		return nil, fmt.Errorf("model: %w: %q", ErrUnknownProtocol, name)
	}

	r, err := m.engine.Run(name)
	if err != nil {
		return nil, err
	}
	if withFeedback {
		r = m.solver.Apply(m.Params, name, r)
	}
	r.FinalizeTotals(m.Params.Jg0)

	m.Current = r
	return r, nil
}

// SimulateAll runs the three protocols in canonical order, storing each
// result in the history store keyed by protocol name, and returns the
// store. The store is rebuilt from scratch on every call.
func (m *Model) SimulateAll(withFeedback bool) (map[string]*protocol.Results, error) {
	m.History = make(map[string]*protocol.Results, len(protocol.Names()))
	for _, name := range protocol.Names() {
		r, err := m.Simulate(name, withFeedback)
		if err != nil {
			return nil, err
		}
		m.History[name] = r
	}
	return m.History, nil
}
