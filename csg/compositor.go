package csg

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fernwerk/waypost/mesh"
	"go.uber.org/zap"
)

var (
	// ErrNoEngine is returned by Difference when the Compositor has no
	// boolean engine to run it on.
	ErrNoEngine = errors.New("no boolean engine configured")
	// ErrEmptyResult is returned when a difference removes the whole
	// solid.
	ErrEmptyResult = errors.New("boolean produced an empty mesh")
)

// Compositor wraps an Engine with input cleaning and fallback policy.
// Without an engine it still operates degraded: unions concatenate
// shells instead of merging volumes and differences fail, letting the
// caller skip carved features rather than abort the whole model.
type Compositor struct {
	eng        Engine
	log        *zap.Logger
	concatWarn sync.Once
}

// NewCompositor returns a Compositor over eng. eng may be nil for
// degraded operation. A nil logger disables logging.
func NewCompositor(eng Engine, log *zap.Logger) *Compositor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compositor{eng: eng, log: log}
}

// Engined reports whether a boolean engine is available.
func (c *Compositor) Engined() bool { return c.eng != nil }

// Union merges the solids into one mesh. Inputs are cleaned first and
// empty inputs are dropped. If the engine fails the operation is
// retried in exact mode, then falls back to shell concatenation with a
// warning so generation always produces printable output.
func (c *Compositor) Union(solids ...mesh.Mesh) mesh.Mesh {
	if len(solids) == 0 {
		panic("union of no solids")
	}
	live := solids[:0:0]
	for _, s := range solids {
		if !s.IsEmpty() {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		return mesh.Mesh{}
	}
	if len(live) == 1 {
		return live[0].Clone()
	}
	if c.eng == nil {
		c.concatWarn.Do(func() {
			c.log.Warn("no boolean engine, unions degrade to shell concatenation")
		})
		return mesh.Concat(live...)
	}
	cleaned := make([]mesh.Mesh, len(live))
	for i, s := range live {
		cleaned[i] = s.Cleaned(0)
	}
	out, err := c.eng.Union(false, cleaned...)
	if err != nil || out.IsEmpty() {
		c.log.Warn("union failed, retrying exact",
			zap.Int("solids", len(cleaned)), zap.Error(err))
		out, err = c.eng.Union(true, cleaned...)
	}
	if err != nil || out.IsEmpty() {
		c.log.Warn("exact union failed, falling back to shell concatenation",
			zap.Int("solids", len(cleaned)), zap.Error(err))
		return mesh.Concat(live...)
	}
	return out
}

// Difference removes tool from base. Unlike Union there is no shape
// that approximates a failed subtraction, so errors propagate and the
// caller decides whether the carved feature is optional.
func (c *Compositor) Difference(base, tool mesh.Mesh) (mesh.Mesh, error) {
	if base.IsEmpty() {
		return mesh.Mesh{}, ErrEmptyResult
	}
	if tool.IsEmpty() {
		return base.Clone(), nil
	}
	if c.eng == nil {
		return mesh.Mesh{}, ErrNoEngine
	}
	out, err := c.eng.Difference(base.Cleaned(0), tool.Cleaned(0), false)
	if err != nil || out.IsEmpty() {
		c.log.Warn("difference failed, retrying exact", zap.Error(err))
		out, err = c.eng.Difference(base.Cleaned(0), tool.Cleaned(0), true)
	}
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("difference: %w", err)
	}
	if out.IsEmpty() {
		return mesh.Mesh{}, ErrEmptyResult
	}
	return out, nil
}
