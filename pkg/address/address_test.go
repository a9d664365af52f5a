package address

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() Address {
	var a Address
	for i := range a {
		a[i] = byte(i + 1)
	}
	return a
}

func TestAddress_Bech32RoundTrip(t *testing.T) {
	a := testAddress()

	s, err := a.ToBech32String()
	require.NoError(t, err)
	assert.Contains(t, s, DefaultHRP+"1")

	parsed, err := FromBech32(s)
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestAddress_ZeroBech32(t *testing.T) {
	s, err := Zero.ToBech32String()
	require.NoError(t, err)
	assert.Equal(t, "erd1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq6gq4hu", s)
	assert.True(t, Zero.IsZero())
}

func TestAddress_CustomHRP(t *testing.T) {
	a := testAddress()

	s, err := a.ToBech32StringWithHRP("test")
	require.NoError(t, err)

	parsed, err := FromBech32(s)
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	_, err = a.ToBech32StringWithHRP("")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestFromBytes_WrongLength(t *testing.T) {
	_, err := FromBytes([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidAddress)
	require.Contains(t, err.Error(), "expected 32 bytes, got 3")
}

func TestFromBech32_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad checksum", "erd1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq6gq4hv"},
		{"not bech32", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBech32(tt.input)
			require.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestFromHex(t *testing.T) {
	a := testAddress()

	parsed, err := FromHex("0x" + a.Hex())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	_, err = FromHex("zz")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestParse(t *testing.T) {
	a := testAddress()
	s, err := a.ToBech32String()
	require.NoError(t, err)

	fromBech32, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, a, fromBech32)

	fromHex, err := Parse(a.Hex())
	require.NoError(t, err)
	assert.Equal(t, a, fromHex)

	_, err = Parse("nope")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddress_BytesIsCopy(t *testing.T) {
	a := testAddress()
	b := a.Bytes()
	b[0] = 0xff
	assert.Equal(t, byte(1), a[0])
}

func TestAddress_JSON(t *testing.T) {
	type wrapper struct {
		Addr Address `json:"addr"`
	}
	in := wrapper{Addr: testAddress()}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
