package attack

import "go.uber.org/zap"

// Attack ids shipped with the game.
const (
	Slash  = "slash"
	Thrust = "thrust"
	Spin   = "spin"

	GuardSwipe = "guardSwipe"
	HeavySlam  = "heavySlam"
)

func mustShape(p *Profile, s Shape) *Profile {
	if err := ApplyShape(p, s); err != nil {
		panic(err)
	}
	return p
}

// DefaultEntries returns the built-in profiles in catalog order.
func DefaultEntries() []Entry {
	return []Entry{
		{ID: Slash, Profile: mustShape(&Profile{
			CooldownMs: 290,
			WindupMs:   70,
			ActiveMs:   110,
			RecoveryMs: 160,
			Range:      18,
			HitRadius:  22.4,
			Damage:     20,
			Vfx:        Vfx{Type: "slash", DurationMs: 180, SizeOffset: 6},
		}, ShapeForward)},
		{ID: Thrust, Profile: mustShape(&Profile{
			CooldownMs: 420,
			WindupMs:   120,
			ActiveMs:   90,
			RecoveryMs: 210,
			Range:      30,
			HitRadius:  14,
			Damage:     26,
			Vfx:        Vfx{Type: "thrust", DurationMs: 160, SizeOffset: 2},
		}, ShapeForward)},
		{ID: Spin, Profile: mustShape(&Profile{
			CooldownMs: 900,
			WindupMs:   160,
			ActiveMs:   220,
			RecoveryMs: 300,
			HitRadius:  34,
			Damage:     16,
			Vfx:        Vfx{Type: "spin", DurationMs: 300, SizeOffset: 12},
		}, ShapeSelf)},
		{ID: GuardSwipe, Profile: mustShape(&Profile{
			CooldownMs: 1100,
			WindupMs:   380,
			ActiveMs:   80,
			RecoveryMs: 420,
			Range:      14,
			HitRadius:  20,
			Damage:     8,
			Vfx:        Vfx{Type: "swipe", DurationMs: 140, SizeOffset: 0},
		}, ShapeForward)},
		{ID: HeavySlam, Profile: mustShape(&Profile{
			CooldownMs: 1800,
			WindupMs:   650,
			ActiveMs:   120,
			RecoveryMs: 700,
			HitRadius:  30,
			Damage:     18,
			Vfx:        Vfx{Type: "slam", DurationMs: 260, SizeOffset: 10},
		}, ShapeSelf)},
	}
}

// DefaultCatalog returns a catalog of the built-in profiles with Slash as default.
func DefaultCatalog(logger *zap.Logger) *Catalog {
	c, err := NewCatalog(Slash, DefaultEntries(), logger)
	if err != nil {
		panic("attack: built-in catalog is invalid: " + err.Error())
	}
	return c
}
