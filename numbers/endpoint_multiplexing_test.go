package numbers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointMultiplexingRange(t *testing.T) {
	assert.Equal(t, RangePublicSpec, Datagram6Lo.Range())
}

func TestEndpointMultiplexingConversion(t *testing.T) {
	assert.EqualValues(t, 0x8004, ConfigurationDataRequest)
	assert.Equal(t, ConfigurationDataResponse, EndpointMultiplexingAddress(0x8005))
}

func TestEndpointMultiplexingDescription(t *testing.T) {
	d, ok := ConfigurationDataResponse.Description()
	assert.True(t, ok)
	assert.Equal(t, "Configuration Data Response", d)

	_, ok = EndpointMultiplexingAddress(0x0123).Description()
	assert.False(t, ok)
	assert.Equal(t, RangeFreeUse, EndpointMultiplexingAddress(0x0123).Range())
}

func TestEndpointMultiplexingReservedGap(t *testing.T) {
	assert.Equal(t, RangeReserved, EndpointMultiplexingAddress(0x0000).Range())
	assert.Equal(t, RangeReserved, EndpointMultiplexingAddress(0xffff).Range())
}
