package core

// LimitSource identifies where the effective value of a limit came from.
type LimitSource string

const (
	LimitSourceDefault  LimitSource = "default"
	LimitSourceOverride LimitSource = "override"
	LimitSourceAPI      LimitSource = "api"
	LimitSourceTA       LimitSource = "trusted_advisor"
)

// Limit is a tracked service quota for one AWS service.
type Limit struct {
	name         string
	service      string
	defaultLimit int
	warnPercent  int
	critPercent  int
	limitType    string
	limitSubtype string

	override   *int
	overrideTA bool
	taLimit    *int
	apiLimit   *int
}

// LimitOption configures optional Limit tags.
type LimitOption func(*Limit)

// WithLimitType tags the limit with the AWS resource type it applies to.
func WithLimitType(limitType string) LimitOption {
	return func(l *Limit) {
		l.limitType = limitType
	}
}

// WithLimitSubtype tags the limit with a resource subtype.
func WithLimitSubtype(subtype string) LimitOption {
	return func(l *Limit) {
		l.limitSubtype = subtype
	}
}

// NewLimit creates a limit with its default value and percentage thresholds.
func NewLimit(name, service string, defaultLimit, warnPercent, critPercent int, opts ...LimitOption) *Limit {
	limit := &Limit{
		name:         name,
		service:      service,
		defaultLimit: defaultLimit,
		warnPercent:  warnPercent,
		critPercent:  critPercent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(limit)
		}
	}
	return limit
}

// Name returns the limit's name, unique within its service.
func (l *Limit) Name() string { return l.name }

// Service returns the name of the owning service.
func (l *Limit) Service() string { return l.service }

// DefaultLimit returns the documented AWS default.
func (l *Limit) DefaultLimit() int { return l.defaultLimit }

// WarnPercent returns the warning threshold as a percentage of the limit.
func (l *Limit) WarnPercent() int { return l.warnPercent }

// CritPercent returns the critical threshold as a percentage of the limit.
func (l *Limit) CritPercent() int { return l.critPercent }

// LimitType returns the AWS resource type the limit applies to.
func (l *Limit) LimitType() string { return l.limitType }

// LimitSubtype returns the resource subtype, or "" when there is none.
func (l *Limit) LimitSubtype() string { return l.limitSubtype }

// SetLimitOverride sets a user-supplied limit value. When overrideTA is true
// the override also wins over a Trusted Advisor value.
func (l *Limit) SetLimitOverride(value int, overrideTA bool) {
	l.override = &value
	l.overrideTA = overrideTA
}

// LimitOverride returns the override value, if one is set.
func (l *Limit) LimitOverride() (int, bool) {
	return deref(l.override)
}

// SetTALimit records the value reported by Trusted Advisor.
func (l *Limit) SetTALimit(value int) {
	l.taLimit = &value
}

// TALimit returns the Trusted Advisor value, if one was recorded.
func (l *Limit) TALimit() (int, bool) {
	return deref(l.taLimit)
}

// SetAPILimit records the value reported by the service API.
func (l *Limit) SetAPILimit(value int) {
	l.apiLimit = &value
}

// APILimit returns the API-reported value, if one was recorded.
func (l *Limit) APILimit() (int, bool) {
	return deref(l.apiLimit)
}

// Source reports which value EffectiveLimit resolves to.
func (l *Limit) Source() LimitSource {
	if l.override != nil && (l.overrideTA || l.taLimit == nil) {
		return LimitSourceOverride
	}
	if l.apiLimit != nil {
		return LimitSourceAPI
	}
	if l.taLimit != nil {
		return LimitSourceTA
	}
	return LimitSourceDefault
}

// EffectiveLimit returns the limit value currently in force.
func (l *Limit) EffectiveLimit() int {
	switch l.Source() {
	case LimitSourceOverride:
		return *l.override
	case LimitSourceAPI:
		return *l.apiLimit
	case LimitSourceTA:
		return *l.taLimit
	default:
		return l.defaultLimit
	}
}

func deref(value *int) (int, bool) {
	if value == nil {
		return 0, false
	}
	return *value, true
}
