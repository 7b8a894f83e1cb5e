package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitDefaults(t *testing.T) {
	limit := NewLimit("barlimit1", "SvcBar", 1, 2, 3, WithLimitType("ltbar1"), WithLimitSubtype("sltbar1"))

	require.Equal(t, "barlimit1", limit.Name())
	require.Equal(t, "SvcBar", limit.Service())
	require.Equal(t, 1, limit.DefaultLimit())
	require.Equal(t, 2, limit.WarnPercent())
	require.Equal(t, 3, limit.CritPercent())
	require.Equal(t, "ltbar1", limit.LimitType())
	require.Equal(t, "sltbar1", limit.LimitSubtype())
	require.Equal(t, LimitSourceDefault, limit.Source())
	require.Equal(t, 1, limit.EffectiveLimit())

	_, ok := limit.LimitOverride()
	require.False(t, ok)
	_, ok = limit.APILimit()
	require.False(t, ok)
	_, ok = limit.TALimit()
	require.False(t, ok)
}

func TestLimitSourcePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*Limit)
		source LimitSource
		value  int
	}{
		{
			name:   "ta only",
			setup:  func(l *Limit) { l.SetTALimit(10) },
			source: LimitSourceTA,
			value:  10,
		},
		{
			name:   "api wins over ta",
			setup:  func(l *Limit) { l.SetTALimit(10); l.SetAPILimit(34) },
			source: LimitSourceAPI,
			value:  34,
		},
		{
			name:   "override wins over api",
			setup:  func(l *Limit) { l.SetAPILimit(2); l.SetLimitOverride(99, true) },
			source: LimitSourceOverride,
			value:  99,
		},
		{
			name:   "ta wins over override without overrideTA",
			setup:  func(l *Limit) { l.SetTALimit(10); l.SetLimitOverride(99, false) },
			source: LimitSourceTA,
			value:  10,
		},
		{
			name:   "override without ta",
			setup:  func(l *Limit) { l.SetLimitOverride(99, false) },
			source: LimitSourceOverride,
			value:  99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := NewLimit("x", "Svc", 5, 80, 99)
			tt.setup(limit)
			require.Equal(t, tt.source, limit.Source())
			require.Equal(t, tt.value, limit.EffectiveLimit())
		})
	}
}

func TestLimitOverrideKeepsAPIValue(t *testing.T) {
	limit := NewLimit("bar limit2", "SvcBar", 2, 2, 3)
	limit.SetAPILimit(2)
	limit.SetLimitOverride(99, true)

	override, ok := limit.LimitOverride()
	require.True(t, ok)
	require.Equal(t, 99, override)

	api, ok := limit.APILimit()
	require.True(t, ok)
	require.Equal(t, 2, api)
}
