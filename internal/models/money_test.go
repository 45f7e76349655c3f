package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyMarshalFixedTwoDigits(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{12.5, `"12.50"`},
		{0, `"0.00"`},
		{1234.567, `"1234.57"`},
		{99, `"99.00"`},
	}
	for _, tc := range cases {
		b, err := json.Marshal(MoneyFromFloat(tc.in))
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(b))
	}
}

func TestMoneyUnmarshalAcceptsNumberAndString(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`7`), &m))
	assert.Equal(t, "7.00", m.StringFixed(2))

	require.NoError(t, json.Unmarshal([]byte(`"42.135"`), &m))
	assert.Equal(t, "42.14", m.StringFixed(2))

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
}

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString("10.999")
	require.NoError(t, err)
	assert.Equal(t, "11.00", m.StringFixed(2))

	_, err = MoneyFromString("")
	assert.Error(t, err)
}

func TestMoneyRoundTripJSON(t *testing.T) {
	in := MoneyFromFloat(120.5)
	b, err := json.Marshal(in)
	require.NoError(t, err)
	var out Money
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, in.Equal(out.Decimal))
}
