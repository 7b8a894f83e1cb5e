// Package fixtures builds deterministic limit datasets for tests.
package fixtures

import (
	"sort"

	"github.com/limitlens/limitlens/internal/core"
)

// Dataset maps service name to limit name to limit.
type Dataset map[string]map[string]*core.Limit

// SampleLimits returns two services with three limits. "bar limit2" carries
// an override of 99 and "foo limit3" a Trusted Advisor value of 10.
func SampleLimits() Dataset {
	limits := baseLimits()
	limits["SvcBar"]["bar limit2"].SetLimitOverride(99, true)
	limits["SvcFoo"]["foo limit3"].SetTALimit(10)
	return limits
}

// SampleLimitsAPI extends SampleLimits with API-reported values: "bar limit2"
// records an API value of 2 underneath its override, and the extra
// "zzz limit4" reports 34.
func SampleLimitsAPI() Dataset {
	limits := baseLimits()
	limits["SvcFoo"]["zzz limit4"] = core.NewLimit("zzz limit4", "SvcFoo", 4, 1, 5,
		core.WithLimitType("ltfoo4"),
		core.WithLimitSubtype("sltfoo4"),
	)

	limits["SvcBar"]["bar limit2"].SetAPILimit(2)
	limits["SvcBar"]["bar limit2"].SetLimitOverride(99, true)
	limits["SvcFoo"]["foo limit3"].SetTALimit(10)
	limits["SvcFoo"]["zzz limit4"].SetAPILimit(34)
	return limits
}

func baseLimits() Dataset {
	return Dataset{
		"SvcBar": {
			"barlimit1": core.NewLimit("barlimit1", "SvcBar", 1, 2, 3,
				core.WithLimitType("ltbar1"),
				core.WithLimitSubtype("sltbar1"),
			),
			"bar limit2": core.NewLimit("bar limit2", "SvcBar", 2, 2, 3,
				core.WithLimitType("ltbar2"),
				core.WithLimitSubtype("sltbar2"),
			),
		},
		"SvcFoo": {
			"foo limit3": core.NewLimit("foo limit3", "SvcFoo", 3, 2, 3,
				core.WithLimitType("ltfoo3"),
				core.WithLimitSubtype("sltfoo3"),
			),
		},
	}
}

// ServiceNames returns the dataset's services in sorted order.
func (d Dataset) ServiceNames() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LimitNames returns the limits of service in sorted order.
func (d Dataset) LimitNames(service string) []string {
	limits := d[service]
	names := make([]string, 0, len(limits))
	for name := range limits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Each visits every limit ordered by service, then limit name.
func (d Dataset) Each(fn func(*core.Limit)) {
	for _, service := range d.ServiceNames() {
		for _, name := range d.LimitNames(service) {
			fn(d[service][name])
		}
	}
}
