package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/limitlens/limitlens/internal/core"
)

func TestSampleLimits(t *testing.T) {
	limits := SampleLimits()

	require.Equal(t, []string{"SvcBar", "SvcFoo"}, limits.ServiceNames())
	require.Equal(t, []string{"bar limit2", "barlimit1"}, limits.LimitNames("SvcBar"))
	require.Equal(t, []string{"foo limit3"}, limits.LimitNames("SvcFoo"))

	bar1 := limits["SvcBar"]["barlimit1"]
	require.Equal(t, "barlimit1", bar1.Name())
	require.Equal(t, "SvcBar", bar1.Service())
	require.Equal(t, 1, bar1.DefaultLimit())
	require.Equal(t, 2, bar1.WarnPercent())
	require.Equal(t, 3, bar1.CritPercent())
	require.Equal(t, "ltbar1", bar1.LimitType())
	require.Equal(t, "sltbar1", bar1.LimitSubtype())
	require.Equal(t, core.LimitSourceDefault, bar1.Source())

	bar2 := limits["SvcBar"]["bar limit2"]
	override, ok := bar2.LimitOverride()
	require.True(t, ok)
	require.Equal(t, 99, override)
	_, ok = bar2.APILimit()
	require.False(t, ok)

	foo3 := limits["SvcFoo"]["foo limit3"]
	ta, ok := foo3.TALimit()
	require.True(t, ok)
	require.Equal(t, 10, ta)
	require.Equal(t, 10, foo3.EffectiveLimit())

	require.NotContains(t, limits["SvcFoo"], "zzz limit4")
}

func TestSampleLimitsAPI(t *testing.T) {
	limits := SampleLimitsAPI()

	require.Equal(t, []string{"foo limit3", "zzz limit4"}, limits.LimitNames("SvcFoo"))

	bar2 := limits["SvcBar"]["bar limit2"]
	override, ok := bar2.LimitOverride()
	require.True(t, ok)
	require.Equal(t, 99, override)
	api, ok := bar2.APILimit()
	require.True(t, ok)
	require.Equal(t, 2, api)
	require.Equal(t, 99, bar2.EffectiveLimit())

	zzz := limits["SvcFoo"]["zzz limit4"]
	require.Equal(t, 4, zzz.DefaultLimit())
	require.Equal(t, 1, zzz.WarnPercent())
	require.Equal(t, 5, zzz.CritPercent())
	require.Equal(t, "ltfoo4", zzz.LimitType())
	require.Equal(t, "sltfoo4", zzz.LimitSubtype())
	require.Equal(t, core.LimitSourceAPI, zzz.Source())
	require.Equal(t, 34, zzz.EffectiveLimit())
}

func TestSampleLimitsAreFresh(t *testing.T) {
	first := SampleLimits()
	first["SvcBar"]["barlimit1"].SetLimitOverride(1000, true)
	delete(first, "SvcFoo")

	second := SampleLimits()
	require.Contains(t, second, "SvcFoo")
	_, ok := second["SvcBar"]["barlimit1"].LimitOverride()
	require.False(t, ok)
}

func TestDatasetEachOrder(t *testing.T) {
	var visited []string
	SampleLimitsAPI().Each(func(l *core.Limit) {
		visited = append(visited, l.Service()+"/"+l.Name())
	})

	require.Equal(t, []string{
		"SvcBar/bar limit2",
		"SvcBar/barlimit1",
		"SvcFoo/foo limit3",
		"SvcFoo/zzz limit4",
	}, visited)
}
