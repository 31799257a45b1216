package macpdu

import (
	"testing"

	"github.com/hophop-go/dectmac/numbers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseIEStream(t *testing.T) {
	data := []byte{
		73, 5, 176, 16, 6, 0, 13, 83, 7, 8, 12, 138, 160, 215, 2, 100, 64, 24,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	stream := ParseStream(data)

	ie1, err, ok := stream.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.EqualValues(t, 0x09, ie1.IENumber().Type6bit.Byte())
	assert.Equal(t, []byte{176, 16, 6, 0, 13}, ie1.Payload())

	ie2, err, ok := stream.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.EqualValues(t, 0x13, ie2.IENumber().Type6bit.Byte())
	assert.Equal(t, []byte{8, 12, 138, 160, 215, 2, 100}, ie2.Payload())

	ie3, err, ok := stream.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.EqualValues(t, 0x00, ie3.IENumber().Type6bit.Byte())
	assert.Len(t, ie3.Payload(), 24)
	for _, b := range ie3.Payload() {
		assert.Zero(t, b)
	}

	_, _, ok = stream.Next()
	assert.False(t, ok, "stream should be exhausted")
}

func TestIERoundTrip(t *testing.T) {
	code, err := numbers.NewIEType6bit(0x03)
	require.NoError(t, err)
	payload := []byte{0x10, 0, 0, 0, 0, 0, 0, 0, 0}

	ie, err := New6bitWithLength(code, payload)
	require.NoError(t, err)

	buf := ie.Serialize(nil)

	stream := ParseStream(buf)
	parsed, err, ok := stream.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.EqualValues(t, 0x03, parsed.IENumber().Type6bit.Byte())
	assert.Equal(t, payload, parsed.Payload())

	_, _, ok = stream.Next()
	assert.False(t, ok)
}

func TestShortIELengthInvariant(t *testing.T) {
	zeroLen, err := numbers.NewIEType5bitFromLenAndValue(0, 0x01)
	require.NoError(t, err)
	ie, err := New5bit(zeroLen, nil)
	require.NoError(t, err)
	buf := ie.Serialize(nil)
	assert.Equal(t, []byte{0xc0 | zeroLen.Composite()}, buf)

	oneLen, err := numbers.NewIEType5bitFromLenAndValue(1, 0x01)
	require.NoError(t, err)
	ie2, err := New5bit(oneLen, []byte{0xaa})
	require.NoError(t, err)
	buf2 := ie2.Serialize(nil)
	assert.Len(t, buf2, 2)

	_, err = New5bit(zeroLen, []byte{0xaa})
	assert.Error(t, err)
}

func TestNew6bitWithLengthRejectsOversizedPayload(t *testing.T) {
	code, err := numbers.NewIEType6bit(0x01)
	require.NoError(t, err)
	_, err = New6bitWithLength(code, make([]byte, 65536))
	assert.Error(t, err)
}

func TestStreamStopsAfterError(t *testing.T) {
	// MAC-ext 01 (8-bit length) claiming a payload longer than what follows.
	data := []byte{0x41, 0xff, 0x01, 0x02}
	stream := ParseStream(data)

	_, err, ok := stream.Next()
	require.True(t, ok)
	require.Error(t, err)

	_, _, ok = stream.Next()
	assert.False(t, ok)
}

func TestIERoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		code := rapid.Uint8Range(0, 0x3f).Draw(rt, "code")
		payloadLen := rapid.IntRange(0, 64).Draw(rt, "payloadLen")
		payload := rapid.SliceOfN(rapid.Byte(), payloadLen, payloadLen).Draw(rt, "payload")

		t6, err := numbers.NewIEType6bit(code)
		assert.NoError(rt, err)
		ie, err := New6bitWithLength(t6, payload)
		assert.NoError(rt, err)

		buf := ie.Serialize(nil)
		parsed, parseErr := ParseIE(&buf)
		assert.NoError(rt, parseErr)
		assert.Equal(rt, ie.IENumber().Type6bit.Byte(), parsed.IENumber().Type6bit.Byte())
		assert.Equal(rt, ie.Payload(), parsed.Payload())
	})
}
