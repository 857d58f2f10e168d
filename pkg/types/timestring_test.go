package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)
	assert.Equal(t, "10:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("10:30:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 630, TimeString("10:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("10:30"))
	assert.False(t, TimeString("10:30").IsBefore("10:30"))
	assert.True(t, TimeString("11:00").IsAfter("10:30"))
	assert.False(t, TimeString("10:30").IsAfter("10:30"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	result, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), result)

	// Граница суток не включается
	result, err = TimeString("23:00").AddMinutes(59)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), result)

	_, err = TimeString("23:00").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "15:04:05"
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:15")))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 14, 18, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
