package numbers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderTypeConstants(t *testing.T) {
	assert.EqualValues(t, 0x0, HeaderTypeDataMacPdu)
	assert.EqualValues(t, 0x1, HeaderTypeBeacon)
	assert.EqualValues(t, 0x2, HeaderTypeUnicast)
	assert.EqualValues(t, 0x3, HeaderTypeRdBroadcast)
	assert.EqualValues(t, 0xf, HeaderTypeEscape)
}

func TestMuxExtConstants(t *testing.T) {
	assert.EqualValues(t, 0b00, MuxExtNoLengthField)
	assert.EqualValues(t, 0b01, MuxExtLength8Bit)
	assert.EqualValues(t, 0b10, MuxExtLength16Bit)
	assert.EqualValues(t, 0b11, MuxExtShortIE)
}
