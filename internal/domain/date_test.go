package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2023, time.December, 31)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-12-31"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))
}

func TestDate_NullPointer(t *testing.T) {
	var payload struct {
		Pagamento *Date `json:"dataPagamento"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"dataPagamento":null}`), &payload))
	assert.Nil(t, payload.Pagamento)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dataPagamento":null}`, string(out))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseDate("29/02/2024")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDate_Scan(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.January, 15, 23, 30, 0, 0, loc)))
	assert.Equal(t, "2024-01-15", d.String())

	require.NoError(t, d.Scan([]byte("2024-06-01")))
	assert.Equal(t, "2024-06-01", d.String())

	assert.ErrorIs(t, d.Scan(42), ErrInvalidFormat)

	v, err := NewDate(2024, time.June, 1).Value()
	require.NoError(t, err)
	assert.IsType(t, time.Time{}, v)
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 2)

	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.False(t, a.After(a))
}
