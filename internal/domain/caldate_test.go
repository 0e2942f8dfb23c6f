package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalDateRoundTrip(t *testing.T) {
	for _, s := range []string{
		"2025-09-01",
		"2025-12-31",
		"2024-02-29", // leap day
		"1999-01-01",
	} {
		d, err := ParseCalDate(s)
		require.NoError(t, err)
		require.Equal(t, s, d.String())

		back, err := ParseCalDate(d.String())
		require.NoError(t, err)
		require.Equal(t, d, back)
	}
}

func TestParseCalDateRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "2025-9-1", "2025/09/01", "not-a-date", "2025-02-30"} {
		_, err := ParseCalDate(s)
		require.Error(t, err, "expected %q to be rejected", s)
	}
}

// A midnight in any timezone must map to that day's calendar date. Routing
// through a UTC instant instead of wall-clock fields shifts the day for
// non-UTC offsets; this pins the behavior for one offset on each side of UTC.
func TestCalDateOfIgnoresTimezoneOffset(t *testing.T) {
	west := time.FixedZone("UTC-8", -8*60*60)
	east := time.FixedZone("UTC+13", 13*60*60)

	for _, loc := range []*time.Location{west, east, time.UTC} {
		midnight := time.Date(2025, time.September, 1, 0, 0, 0, 0, loc)
		require.Equal(t, CalDate{2025, time.September, 1}, CalDateOf(midnight), "zone %s", loc)
	}

	// The failure mode this type prevents: converting the westward local
	// midnight to UTC lands on the following day.
	westMidnight := time.Date(2025, time.September, 1, 0, 0, 0, 0, west)
	require.Equal(t, CalDate{2025, time.September, 1}, CalDateOf(westMidnight))
	require.Equal(t, CalDate{2025, time.September, 2}, CalDateOf(westMidnight.UTC()))

	// And the eastward local midnight converted to UTC lands on the day before.
	eastMidnight := time.Date(2025, time.September, 1, 0, 0, 0, 0, east)
	require.Equal(t, CalDate{2025, time.August, 31}, CalDateOf(eastMidnight.UTC()))
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		year   int
		month0 int
		first  string
		last   string
	}{
		{2025, 8, "2025-09-01", "2025-09-30"}, // zero-based: 8 = September
		{2025, 0, "2025-01-01", "2025-01-31"},
		{2025, 11, "2025-12-01", "2025-12-31"},
		{2024, 1, "2024-02-01", "2024-02-29"}, // leap February
		{2025, 1, "2025-02-01", "2025-02-28"},
	}
	for _, tt := range tests {
		first, last := MonthRange(tt.year, tt.month0)
		require.Equal(t, tt.first, first.String())
		require.Equal(t, tt.last, last.String())
	}
}

func TestCalDateBefore(t *testing.T) {
	a := CalDate{2025, time.August, 31}
	b := CalDate{2025, time.September, 1}
	require.True(t, a.Before(b))
	require.False(t, b.Before(a))
	require.False(t, a.Before(a))
}

func TestCalDateJSON(t *testing.T) {
	d := CalDate{2025, time.September, 1}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2025-09-01"`, string(data))

	var back CalDate
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, d, back)

	require.Error(t, json.Unmarshal([]byte(`"09/01/2025"`), &back))
	require.Error(t, json.Unmarshal([]byte(`20250901`), &back))
}

func TestCalDateScan(t *testing.T) {
	var d CalDate
	// Drivers hand DATE columns back as midnight time.Time values.
	require.NoError(t, d.Scan(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, CalDate{2025, time.September, 1}, d)

	require.NoError(t, d.Scan("2024-02-29"))
	require.Equal(t, CalDate{2024, time.February, 29}, d)

	require.NoError(t, d.Scan([]byte("1999-01-01")))
	require.Equal(t, CalDate{1999, time.January, 1}, d)

	require.Error(t, d.Scan(42))
}
