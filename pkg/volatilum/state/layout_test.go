package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

const testAccount = "PoolConfig"

func TestLayoutVersion_Compatible(t *testing.T) {
	tests := []struct {
		name     string
		onchain  LayoutVersion
		expected LayoutVersion
		ok       bool
	}{
		{"identical", LayoutVersion{1, 0}, LayoutVersion{1, 0}, true},
		{"additive minor", LayoutVersion{1, 3}, LayoutVersion{1, 0}, true},
		{"older minor", LayoutVersion{1, 0}, LayoutVersion{1, 3}, true},
		{"newer major", LayoutVersion{2, 0}, LayoutVersion{1, 9}, false},
		{"older major", LayoutVersion{0, 7}, LayoutVersion{1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.onchain.Compatible(tt.expected))
			err := CheckCompatible(tt.onchain, tt.expected)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, types.IsKind(err, types.LayoutVersionMismatch))
		})
	}
	assert.Equal(t, "2.15", LayoutVersion{2, 15}.String())
}

func TestDecodeLayoutVersion(t *testing.T) {
	data := []byte{0xff, 0x02, 0x00, 0x01, 0x01}

	v, err := DecodeLayoutVersion(data, 1)
	require.NoError(t, err)
	assert.Equal(t, LayoutVersion{Major: 2, Minor: 257}, v)

	_, err = DecodeLayoutVersion(data, 2)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.MalformedAccountData))

	_, err = DecodeLayoutVersion(data, -1)
	assert.True(t, types.IsKind(err, types.MalformedAccountData))
}

func TestDiscriminator(t *testing.T) {
	d := AccountDiscriminator(testAccount)
	assert.NotEqual(t, AccountDiscriminator("RiskParams"), d)

	assert.NoError(t, CheckDiscriminator(append(d[:], 1, 2, 3), testAccount))

	err := CheckDiscriminator(d[:4], testAccount)
	assert.True(t, types.IsKind(err, types.MalformedAccountData))

	err = CheckDiscriminator(d[:], "RiskParams")
	assert.True(t, types.IsKind(err, types.MalformedAccountData))
}

func TestReadHeader(t *testing.T) {
	encoded, err := EncodeHeader(testAccount, LayoutVersion{Major: 1, Minor: 2})
	require.NoError(t, err)
	require.Len(t, encoded, HeaderLen)

	t.Run("compatible", func(t *testing.T) {
		body := append(append([]byte{}, encoded...), 0xde, 0xad)
		hdr, err := ReadHeader(body, testAccount, LayoutVersion{Major: 1, Minor: 0})
		require.NoError(t, err)
		assert.Equal(t, AccountDiscriminator(testAccount), hdr.Discriminator)
		assert.Equal(t, LayoutVersion{Major: 1, Minor: 2}, hdr.Version)
	})

	t.Run("major mismatch", func(t *testing.T) {
		_, err := ReadHeader(encoded, testAccount, LayoutVersion{Major: 2})
		require.Error(t, err)
		assert.True(t, types.IsKind(err, types.LayoutVersionMismatch))
	})

	t.Run("wrong account type", func(t *testing.T) {
		_, err := ReadHeader(encoded, "RiskParams", LayoutVersion{Major: 1})
		assert.True(t, types.IsKind(err, types.MalformedAccountData))
	})

	t.Run("truncated version", func(t *testing.T) {
		_, err := ReadHeader(encoded[:DiscriminatorLen+1], testAccount, LayoutVersion{Major: 1})
		assert.True(t, types.IsKind(err, types.MalformedAccountData))
	})
}

// go test -fuzz FuzzReadHeader ./pkg/volatilum/state
func FuzzReadHeader(f *testing.F) {
	valid, err := EncodeHeader(testAccount, LayoutVersion{Major: 1, Minor: 4})
	require.NoError(f, err)

	f.Add(valid)
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, data []byte) {
		hdr, err := ReadHeader(data, testAccount, LayoutVersion{Major: 1})
		if err != nil {
			kind, ok := types.KindOf(err)
			require.True(t, ok, "untyped error: %v", err)
			require.Contains(t, []types.ErrorKind{types.MalformedAccountData, types.LayoutVersionMismatch}, kind)
			return
		}
		require.Equal(t, uint16(1), hdr.Version.Major)
	})
}
