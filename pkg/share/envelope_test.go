package share_test

import (
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/share"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	f := testField(t)
	s := share.Share{X: f.FromUint64(4), Y: f.FromUint64(123)}

	data, err := share.Seal(f, 3, s)
	require.NoError(t, err)

	sealed, err := share.Open(data)
	require.NoError(t, err)
	assert.True(t, sealed.Field.Equal(f))
	assert.Equal(t, 3, sealed.Threshold)
	assert.True(t, sealed.Share.Equal(s))
}

func TestOpenDetectsTampering(t *testing.T) {
	f := testField(t)
	data, err := share.Seal(f, 2, share.Share{X: f.FromUint64(1), Y: f.FromUint64(5)})
	require.NoError(t, err)

	var raw map[int]interface{}
	require.NoError(t, cbor.Unmarshal(data, &raw))
	body := raw[4].([]byte)
	body[len(body)-1] ^= 0x01
	raw[4] = body
	tampered, err := cbor.Marshal(raw)
	require.NoError(t, err)

	_, err = share.Open(tampered)
	assert.ErrorIs(t, err, share.ErrChecksum)
}

func TestOpenRejectsVersion(t *testing.T) {
	data, err := cbor.Marshal(map[int]interface{}{1: 9})
	require.NoError(t, err)
	_, err = share.Open(data)
	assert.ErrorIs(t, err, share.ErrVersion)

	_, err = share.Open([]byte{0xff, 0x00})
	assert.Error(t, err)
}

func TestSealRejects(t *testing.T) {
	f := testField(t)
	_, err := share.Seal(f, 0, share.Share{X: f.One(), Y: f.One()})
	assert.Error(t, err)
	_, err = share.Seal(f, 1, share.Share{X: f.Zero(), Y: f.One()})
	assert.ErrorIs(t, err, share.ErrZeroX)
}

func TestOpenAll(t *testing.T) {
	f := testField(t)
	other := field.MustNew(big.NewInt(65537))

	a, err := share.Seal(f, 2, share.Share{X: f.FromUint64(1), Y: f.FromUint64(5)})
	require.NoError(t, err)
	b, err := share.Seal(f, 2, share.Share{X: f.FromUint64(2), Y: f.FromUint64(6)})
	require.NoError(t, err)
	c, err := share.Seal(other, 2, share.Share{X: other.FromUint64(3), Y: other.FromUint64(7)})
	require.NoError(t, err)
	d, err := share.Seal(f, 3, share.Share{X: f.FromUint64(4), Y: f.FromUint64(8)})
	require.NoError(t, err)

	got, k, set, err := share.OpenAll([][]byte{a, b})
	require.NoError(t, err)
	assert.True(t, got.Equal(f))
	assert.Equal(t, 2, k)
	assert.Len(t, set, 2)

	_, _, _, err = share.OpenAll([][]byte{a, c})
	assert.ErrorIs(t, err, share.ErrPrimeMismatch)

	_, _, _, err = share.OpenAll([][]byte{a, d})
	assert.Error(t, err)

	_, _, _, err = share.OpenAll(nil)
	assert.Error(t, err)
}

func FuzzOpen(f *testing.F) {
	fld := field.MustNew(big.NewInt(65537))
	seed, err := share.Seal(fld, 2, share.Share{X: fld.FromUint64(1), Y: fld.FromUint64(2)})
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)
	f.Add([]byte{})
	f.Add([]byte{0xa0})

	f.Fuzz(func(t *testing.T, data []byte) {
		sealed, err := share.Open(data)
		if err != nil {
			return
		}
		// Anything that opens must be a valid share of its own field.
		if err := sealed.Share.Validate(sealed.Field); err != nil {
			t.Fatalf("opened invalid share: %v", err)
		}
	})
}
