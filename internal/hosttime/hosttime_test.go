package hosttime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-gregor/internal/calendar"
	"github.com/tartampluch/go-gregor/internal/hosttime"
	"github.com/tartampluch/go-gregor/internal/timezone"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestFromHostTime(t *testing.T) {
	epoch := time.Unix(0, 0)
	assert.Equal(t, timezone.UnixTimestamp(0), hosttime.FromHostTime(epoch))
	assert.Equal(t, timezone.UnixTimestamp(1_468_702_726), hosttime.FromHostTime(epoch.Add(1_468_702_726*time.Second)))
	assert.Equal(t, timezone.UnixTimestamp(-1), hosttime.FromHostTime(epoch.Add(-time.Second)))

	// Sub-second parts are dropped towards the past.
	assert.Equal(t, timezone.UnixTimestamp(-1), hosttime.FromHostTime(epoch.Add(-time.Millisecond)))
	assert.Equal(t, timezone.UnixTimestamp(0), hosttime.FromHostTime(epoch.Add(999*time.Millisecond)))
}

func TestToHostTime(t *testing.T) {
	assert.True(t, time.Unix(0, 0).Equal(hosttime.ToHostTime(0)))
	assert.Equal(t, time.Date(2016, time.July, 16, 20, 58, 46, 0, time.UTC), hosttime.ToHostTime(1_468_702_726))
	assert.Equal(t, time.Date(1969, time.December, 31, 23, 59, 59, 0, time.UTC), hosttime.ToHostTime(-1))
}

func TestNow(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)}
	assert.Equal(t, timezone.UnixTimestamp(1_749_981_600), hosttime.Now(clock))
}

func TestDateTimeHostConversions(t *testing.T) {
	host := time.Date(2016, time.July, 16, 20, 58, 46, 0, time.UTC)

	dt := hosttime.DateTimeFromHost(host, timezone.UTC{})
	assert.Equal(t, calendar.MustNaiveDateTime(2016, calendar.July, 16, 20, 58, 46), dt.Naive)
	assert.Equal(t, host, hosttime.DateTimeToHost(dt))

	jst := hosttime.DateTimeFromHost(host, timezone.FromHoursAndMinutes(9, 0))
	assert.Equal(t, calendar.MustNaiveDateTime(2016, calendar.July, 17, 5, 58, 46), jst.Naive)
	assert.True(t, host.Equal(hosttime.DateTimeToHost(jst)))
}
