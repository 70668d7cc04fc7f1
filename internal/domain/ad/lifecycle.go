package ad

import "time"

// Defaults for the expiring-soon reminder behaviour. Reminders start when
// an ad enters its final window before EndDate and repeat at most once
// per throttle period until expiry.
const (
	DefaultReminderWindow   = 72 * time.Hour
	DefaultReminderThrottle = 24 * time.Hour
)

// State is the explicit form of the lifecycle that the Active flag,
// EndDate and LastReminderSentAt columns encode together.
type State string

const (
	StateActive       State = "ACTIVE"
	StateExpiringSoon State = "EXPIRING_SOON"
	StateExpired      State = "EXPIRED"
)

// Decision is the transition the reconciler must apply to an ad on the
// current pass.
type Decision int

const (
	DecisionNone Decision = iota
	DecisionExpire
	DecisionRemind
)

// StateAt derives the lifecycle state of the ad at the given instant.
// An inactive ad is always StateExpired: deactivation is irreversible.
func (a *Ad) StateAt(now time.Time, window time.Duration) State {
	if !a.Active || !a.EndDate.After(now) {
		return StateExpired
	}
	if !a.EndDate.After(now.Add(window)) {
		return StateExpiringSoon
	}
	return StateActive
}

// Evaluate applies the transition table to a single ad. The expiry and
// reminder predicates are mutually exclusive (EndDate <= now vs.
// EndDate > now), so at most one transition is returned per pass.
func Evaluate(a *Ad, now time.Time, window, throttle time.Duration) Decision {
	if !a.Active {
		return DecisionNone
	}
	if !a.EndDate.After(now) {
		return DecisionExpire
	}
	if a.EndDate.After(now.Add(window)) {
		return DecisionNone
	}
	if a.LastReminderSentAt.Valid && a.LastReminderSentAt.Time.After(now.Add(-throttle)) {
		return DecisionNone
	}
	return DecisionRemind
}
