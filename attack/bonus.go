package attack

// Equipment is the slice of the player's loadout the damage rules read.
type Equipment struct {
	Weapon string
}

// BonusTables maps a weapon name to the extra damage it rolls on every hit.
type BonusTables map[string]WeightedTable

// Resolve rolls the bonus table for the equipped weapon, or returns 0 when
// the weapon has none.
func (b BonusTables) Resolve(eq Equipment, src Source) int {
	table, ok := b[eq.Weapon]
	if !ok || eq.Weapon == "" {
		return 0
	}
	return ResolveWeightedDamage(table, 0, src)
}

// DefaultBonusTables returns the shipped per-weapon bonus rolls.
func DefaultBonusTables() BonusTables {
	return BonusTables{
		"Kendo Stick": {
			{Value: 2, Weight: 1},
			{Value: 4, Weight: 6},
			{Value: 6, Weight: 1},
		},
	}
}
