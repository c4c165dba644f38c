package attack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/doomerang-combat/attack"
)

const catalogDoc = `
default: jab
profiles:
  - id: jab
    shape: forward
    cooldown_ms: 250
    windup_ms: 50
    active_ms: 90
    recovery_ms: 120
    range: 16
    hit_radius: 20
    damage: 12
    vfx:
      type: jab
      duration_ms: 120
      size_offset: 3
  - id: stomp
    shape: self
    cooldown_ms: 800
    windup_ms: 200
    active_ms: 150
    recovery_ms: 250
    hit_radius: 30
    damage: 18
weapon_bonus:
  Kendo Stick:
    - {value: 3, weight: 1}
    - {value: 5, weight: 3}
`

func TestLoadCatalogYAML(t *testing.T) {
	c, bonus, err := attack.LoadCatalogYAML([]byte(catalogDoc), nil)
	require.NoError(t, err)

	assert.Equal(t, "jab", c.DefaultID())
	assert.Equal(t, []string{"jab", "stomp"}, c.IDs())

	jab, ok := c.Get("jab")
	require.True(t, ok)
	assert.Equal(t, int64(50), jab.WindupMs)
	assert.Equal(t, "jab", jab.Vfx.Type)
	assert.NotNil(t, jab.AttackCenter)

	require.Contains(t, bonus, "Kendo Stick")
	assert.Len(t, bonus["Kendo Stick"], 2)
}

func TestLoadCatalogYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "profiles: [::"},
		{"no profiles", "default: jab\n"},
		{"bad shape", "profiles:\n  - id: jab\n    shape: cone\n"},
		{"negative window", "profiles:\n  - id: jab\n    windup_ms: -5\n"},
		{"missing default", "default: kick\nprofiles:\n  - id: jab\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := attack.LoadCatalogYAML([]byte(tt.doc), nil)
			assert.Error(t, err)
		})
	}
}
