package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCivilDateScan(t *testing.T) {
	var d CivilDate

	// The postgres driver delivers date columns as time.Time.
	require.NoError(t, d.Scan(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, CivilDate("2025-03-15"), d)

	require.NoError(t, d.Scan("2025-03-15"))
	assert.Equal(t, CivilDate("2025-03-15"), d)

	// Timestamp-shaped text is truncated back to the civil form.
	require.NoError(t, d.Scan("2025-03-15T00:00:00Z"))
	assert.Equal(t, CivilDate("2025-03-15"), d)

	require.NoError(t, d.Scan([]byte("2025-03-15")))
	assert.Equal(t, CivilDate("2025-03-15"), d)

	require.NoError(t, d.Scan(nil))
	assert.Equal(t, CivilDate(""), d)

	assert.Error(t, d.Scan(42))
}

func TestCivilDateValue(t *testing.T) {
	v, err := CivilDate("2025-03-15").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", v)

	v, err = CivilDate("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
