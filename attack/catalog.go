package attack

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Entry pairs an attack id with its profile, in catalog order.
type Entry struct {
	ID      string
	Profile *Profile
}

// Catalog maps attack ids to profiles. Insertion order is kept so the
// "first entry" fallback is stable. It is safe for concurrent use, so moves
// may be registered while a game loop resolves attacks.
//
// Invariant: DefaultID always names a registered profile.
type Catalog struct {
	mu        sync.RWMutex
	profiles  map[string]*Profile
	order     []string
	defaultID string
	logger    *zap.Logger
}

// NewCatalog builds a catalog from entries. defaultID must be one of them.
func NewCatalog(defaultID string, entries []Entry, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{
		profiles: make(map[string]*Profile, len(entries)),
		logger:   logger,
	}
	for _, e := range entries {
		if err := c.Register(e.ID, e.Profile); err != nil {
			return nil, err
		}
	}
	if _, ok := c.get(defaultID); !ok {
		return nil, fmt.Errorf("%w: default attack %q is not in the catalog", ErrInvalidProfile, defaultID)
	}
	c.defaultID = defaultID
	return c, nil
}

// Register inserts or overwrites the profile for id. Missing ids, nil
// profiles and profiles failing Validate are rejected.
func (c *Catalog) Register(id string, p *Profile) error {
	if id == "" {
		return fmt.Errorf("%w: empty attack id", ErrInvalidProfile)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("attack %q: %w", id, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profiles == nil {
		c.profiles = make(map[string]*Profile)
	}
	if _, exists := c.profiles[id]; !exists {
		c.order = append(c.order, id)
	}
	c.profiles[id] = p
	return nil
}

// Get returns the profile registered under id.
func (c *Catalog) Get(id string) (*Profile, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.get(id)
}

func (c *Catalog) get(id string) (*Profile, bool) {
	if id == "" {
		return nil, false
	}
	p, ok := c.profiles[id]
	return p, ok
}

// Resolve returns the profile for attackID, else fallbackID, else the
// catalog default, else the first entry. ok is false only for an empty
// catalog; callers must then treat the tick as "no attack possible".
func (c *Catalog) Resolve(attackID, fallbackID string) (id string, p *Profile, ok bool) {
	if c == nil {
		return "", nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range []string{attackID, fallbackID, c.defaultID} {
		if p, ok := c.get(candidate); ok {
			if candidate != attackID && attackID != "" {
				c.log().Debug("attack id not in catalog, using fallback",
					zap.String("requested", attackID),
					zap.String("resolved", candidate),
				)
			}
			return candidate, p, true
		}
	}
	if len(c.order) == 0 {
		return "", nil, false
	}
	first := c.order[0]
	return first, c.profiles[first], true
}

func (c *Catalog) log() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

// DefaultID returns the mandatory default attack id.
func (c *Catalog) DefaultID() string {
	return c.defaultID
}

// IDs returns the registered attack ids in insertion order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of registered profiles.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
