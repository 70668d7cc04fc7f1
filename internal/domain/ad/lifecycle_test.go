package ad

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func adWith(endDate time.Time, active bool, lastReminder *time.Time) *Ad {
	a := &Ad{
		Title:   "Sunrise Hostel Banner",
		EndDate: endDate,
		Active:  active,
	}
	if lastReminder != nil {
		a.LastReminderSentAt = sql.NullTime{Time: *lastReminder, Valid: true}
	}
	return a
}

func TestEvaluate(t *testing.T) {
	reminder25hAgo := testNow.Add(-25 * time.Hour)
	reminder23hAgo := testNow.Add(-23 * time.Hour)
	reminderExactly24hAgo := testNow.Add(-24 * time.Hour)

	tests := []struct {
		name string
		ad   *Ad
		want Decision
	}{
		{
			name: "inactive ad is never touched",
			ad:   adWith(testNow.Add(-time.Hour), false, nil),
			want: DecisionNone,
		},
		{
			name: "end date one second in the past expires",
			ad:   adWith(testNow.Add(-time.Second), true, nil),
			want: DecisionExpire,
		},
		{
			name: "end date exactly now expires",
			ad:   adWith(testNow, true, nil),
			want: DecisionExpire,
		},
		{
			name: "end date far in the future does nothing",
			ad:   adWith(testNow.Add(10*24*time.Hour), true, nil),
			want: DecisionNone,
		},
		{
			name: "end date just outside the window does nothing",
			ad:   adWith(testNow.Add(72*time.Hour+time.Second), true, nil),
			want: DecisionNone,
		},
		{
			name: "end date at the window edge with no prior reminder reminds",
			ad:   adWith(testNow.Add(72*time.Hour), true, nil),
			want: DecisionRemind,
		},
		{
			name: "in window, never reminded, reminds",
			ad:   adWith(testNow.Add(48*time.Hour), true, nil),
			want: DecisionRemind,
		},
		{
			name: "in window, reminded 25h ago, reminds again",
			ad:   adWith(testNow.Add(48*time.Hour), true, &reminder25hAgo),
			want: DecisionRemind,
		},
		{
			name: "in window, reminded exactly 24h ago, reminds again",
			ad:   adWith(testNow.Add(48*time.Hour), true, &reminderExactly24hAgo),
			want: DecisionRemind,
		},
		{
			name: "in window, reminded 23h ago, throttled",
			ad:   adWith(testNow.Add(48*time.Hour), true, &reminder23hAgo),
			want: DecisionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.ad, testNow, DefaultReminderWindow, DefaultReminderThrottle)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateAt(t *testing.T) {
	assert.Equal(t, StateExpired, adWith(testNow.Add(-time.Hour), true, nil).StateAt(testNow, DefaultReminderWindow))
	assert.Equal(t, StateExpired, adWith(testNow.Add(time.Hour), false, nil).StateAt(testNow, DefaultReminderWindow))
	assert.Equal(t, StateExpiringSoon, adWith(testNow.Add(24*time.Hour), true, nil).StateAt(testNow, DefaultReminderWindow))
	assert.Equal(t, StateActive, adWith(testNow.Add(30*24*time.Hour), true, nil).StateAt(testNow, DefaultReminderWindow))
}
