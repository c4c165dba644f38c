package enemyai

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidBehavior is returned when Register is given an empty key or a
// nil behavior.
var ErrInvalidBehavior = errors.New("enemyai: invalid behavior")

// Keys of the shipped behaviors.
const (
	MeleeChaserKey  = "meleeChaser"
	OrbitStrikerKey = "orbitStriker"
	ZoneKeeperKey   = "zoneKeeper"

	// DefaultBehavior runs for any enemy whose key is not registered.
	DefaultBehavior = MeleeChaserKey
)

// Behavior decides movement and windups for one enemy on one tick. It only
// runs when the enemy is free: not dead, stunned or mid-attack.
type Behavior interface {
	Decide(ctx *Context)
}

// BehaviorFunc adapts a plain function to Behavior.
type BehaviorFunc func(ctx *Context)

func (f BehaviorFunc) Decide(ctx *Context) { f(ctx) }

// Registry maps behavior keys to behaviors. The zero value holds the
// shipped behaviors once first used.
//
// Invariant: DefaultBehavior is always registered.
type Registry struct {
	behaviors map[string]Behavior
}

// NewRegistry returns a Registry holding the three shipped behaviors.
func NewRegistry() *Registry {
	r := &Registry{}
	r.init()
	return r
}

func (r *Registry) init() {
	if r.behaviors != nil {
		return
	}
	r.behaviors = map[string]Behavior{
		MeleeChaserKey:  BehaviorFunc(MeleeChaser),
		OrbitStrikerKey: BehaviorFunc(OrbitStriker),
		ZoneKeeperKey:   BehaviorFunc(ZoneKeeper),
	}
}

// Register adds or replaces the behavior under key.
func (r *Registry) Register(key string, b Behavior) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidBehavior)
	}
	if b == nil {
		return fmt.Errorf("%w: %q is nil", ErrInvalidBehavior, key)
	}
	if f, ok := b.(BehaviorFunc); ok && f == nil {
		return fmt.Errorf("%w: %q is nil", ErrInvalidBehavior, key)
	}
	r.init()
	r.behaviors[key] = b
	return nil
}

// Lookup returns the behavior registered under key.
func (r *Registry) Lookup(key string) (Behavior, bool) {
	r.init()
	b, ok := r.behaviors[key]
	return b, ok
}

// Resolve returns the behavior for key, or the default behavior when key is
// not registered. The second result reports whether key itself was found.
func (r *Registry) Resolve(key string) (Behavior, bool) {
	r.init()
	if b, ok := r.behaviors[key]; ok {
		return b, true
	}
	return r.behaviors[DefaultBehavior], false
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.init()
	keys := make([]string, 0, len(r.behaviors))
	for k := range r.behaviors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
