// Package vfx tracks the fire-and-forget visual effect requests emitted by
// the combat engine so a renderer can draw them without owning any timers.
package vfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Effect kinds the combat engine requests. Windup effects use the attack
// profile's own Vfx.Type instead.
const (
	KindDamageNumber = "damageNumber"
	KindSpark        = "spark"
	KindDefeat       = "defeat"
	KindTransition   = "transition"
	KindReaction     = "reaction"
)

// Colors used for damage numbers.
const (
	ColorEnemyDamage  = "#ffd23f"
	ColorPlayerDamage = "#ff4d4d"
)

// Request is the payload of a visual effect request.
type Request struct {
	X, Y       float64
	Size       float64
	DurationMs int64
	Text       string
	Color      string
}

// Handler consumes effect requests.
type Handler func(kind string, req Request)

// rise is how far a damage number drifts upward over its lifetime.
const rise = 18

// Effect is one live effect with its tweened presentation values.
type Effect struct {
	Kind    string
	Request Request

	// Presentation values, updated every Advance.
	OffsetY float32
	Scale   float32

	startedAt int64
	lastAt    int64
	offset    *gween.Tween
	scale     *gween.Tween
}

// Tracker ages effect requests on the simulation clock and drops expired
// ones. The zero value is ready to use.
type Tracker struct {
	effects []*Effect
	now     int64
}

// Push records a request at the tracker's current time. It has the Handler
// signature so it can be installed directly.
func (t *Tracker) Push(kind string, req Request) {
	d := float32(req.DurationMs)
	if d <= 0 {
		d = 1
	}
	e := &Effect{
		Kind:      kind,
		Request:   req,
		Scale:     1,
		startedAt: t.now,
		lastAt:    t.now,
	}
	switch kind {
	case KindDamageNumber, KindReaction:
		e.offset = gween.New(0, -rise, d, ease.OutQuad)
	case KindSpark, KindDefeat:
		e.scale = gween.New(1, 0, d, ease.Linear)
	default:
		e.scale = gween.New(1, 1, d, ease.Linear)
	}
	t.effects = append(t.effects, e)
}

// Advance moves every effect forward to now and drops finished ones.
func (t *Tracker) Advance(now int64) {
	if now < t.now {
		now = t.now
	}
	t.now = now

	live := t.effects[:0]
	for _, e := range t.effects {
		dt := float32(now - e.lastAt)
		e.lastAt = now
		finished := true
		if e.offset != nil {
			v, f := e.offset.Update(dt)
			e.OffsetY = v
			finished = finished && f
		}
		if e.scale != nil {
			v, f := e.scale.Update(dt)
			e.Scale = v
			finished = finished && f
		}
		if finished || now-e.startedAt >= e.Request.DurationMs {
			continue
		}
		live = append(live, e)
	}
	for i := len(live); i < len(t.effects); i++ {
		t.effects[i] = nil
	}
	t.effects = live
}

// Active returns the live effects, oldest first.
func (t *Tracker) Active() []*Effect {
	return t.effects
}

// Len returns the number of live effects.
func (t *Tracker) Len() int {
	return len(t.effects)
}
