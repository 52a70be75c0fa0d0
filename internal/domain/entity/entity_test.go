package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentSchedule(t *testing.T) {
	var a Appointment
	require.NoError(t, a.Schedule("2026-03-03", "23:30", 50))

	assert.Equal(t, "2026-03-03", a.Date())
	assert.Equal(t, "23:30", a.Clock())
	assert.Equal(t, "00:20", a.EndClock())
	assert.Equal(t, time.UTC, a.StartTime.Location())
	assert.Equal(t, 50*time.Minute, a.EndTime.Sub(a.StartTime))

	assert.Error(t, a.Schedule("2026-03-03", "09:00", 0))
	assert.Error(t, a.Schedule("03/03/2026", "09:00", 30))
	assert.Error(t, a.Schedule("2026-03-03", "9h", 30))
}

func TestAppointmentStatus(t *testing.T) {
	assert.True(t, AppointmentConfirmed.IsValid())
	assert.False(t, AppointmentStatus("remarcado").IsValid())

	assert.True(t, AppointmentScheduled.IsActive())
	assert.True(t, AppointmentFinished.IsActive())
	assert.False(t, AppointmentCancelled.IsActive())
	assert.False(t, AppointmentNoShow.IsActive())
}

func TestBlockedDayCovers(t *testing.T) {
	start, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	end, err := ParseDate("2026-03-05")
	require.NoError(t, err)
	b := BlockedDay{StartDate: start, EndDate: end}

	inside, _ := ParseWallClock("2026-03-05", "23:59")
	before, _ := ParseWallClock("2026-02-28", "23:59")
	after, _ := ParseWallClock("2026-03-06", "00:00")

	assert.True(t, b.Covers(start))
	assert.True(t, b.Covers(inside))
	assert.False(t, b.Covers(before))
	assert.False(t, b.Covers(after))
}

func TestSubscriptionStatusIsEntitled(t *testing.T) {
	assert.True(t, SubscriptionActive.IsEntitled())
	assert.True(t, SubscriptionTrialing.IsEntitled())
	for _, s := range []SubscriptionStatus{SubscriptionPastDue, SubscriptionCanceled, SubscriptionUnpaid, SubscriptionIncomplete, ""} {
		assert.False(t, s.IsEntitled(), s)
	}
}

func TestStringList(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	var l StringList
	require.NoError(t, l.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, l)
	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)
	assert.Error(t, l.Scan(42))
}

func TestRawJSON(t *testing.T) {
	out, err := RawJSON(nil).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	var r RawJSON
	require.NoError(t, r.Scan([]byte(`{"event":"x"}`)))
	assert.JSONEq(t, `{"event":"x"}`, string(r))
	assert.Error(t, r.Scan(1.5))
}

func TestConversationMembers(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	c := Conversation{Members: []ConversationMember{{ProfessionalID: a}, {ProfessionalID: b}}}

	assert.True(t, c.HasMember(a))
	assert.False(t, c.HasMember(uuid.New()))
	assert.Equal(t, []uuid.UUID{a, b}, c.MemberIDs())
}
