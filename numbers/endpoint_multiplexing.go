package numbers

import "fmt"

// EndpointMultiplexingAddress is the 16-bit address carried by higher-layer
// signalling/user-plane IEs to multiplex endpoints on top of a single MAC
// connection (DECT-2020 NR Endpoint Multiplexing Address Allocation,
// ETSI TS 103 636-5 Annex C).
//
// The allocation has no systematic or machine-suitable names; names here
// are assigned the same way the reference numbers crate assigns them.
type EndpointMultiplexingAddress uint16

// Range boundaries (ETSI TS 103 636-5 V2.1.1 Appendix A). The three ranges
// are not contiguous; an address outside all of them is Reserved.
const (
	RangeFreeUseLow           EndpointMultiplexingAddress = 0x0100
	RangeFreeUseHigh          EndpointMultiplexingAddress = 0x40ff
	RangePublicSpecLow        EndpointMultiplexingAddress = 0x8000
	RangePublicSpecHigh       EndpointMultiplexingAddress = 0x84ff
	RangeCompanySpecificLow   EndpointMultiplexingAddress = 0xa000
	RangeCompanySpecificHigh  EndpointMultiplexingAddress = 0xbfff
)

// Well-known addresses allocated within the public-specification range.
const (
	DatagramIPv6              EndpointMultiplexingAddress = 0x8002
	Datagram6Lo               EndpointMultiplexingAddress = 0x8003
	ConfigurationDataRequest  EndpointMultiplexingAddress = 0x8004
	ConfigurationDataResponse EndpointMultiplexingAddress = 0x8005
)

var wellKnownDescriptions = map[EndpointMultiplexingAddress]string{
	DatagramIPv6:              "IPv6 datagram",
	Datagram6Lo:               "IPv6 datagram with header compression as defined in RFC6282",
	ConfigurationDataRequest:  "Configuration Data Request",
	ConfigurationDataResponse: "Configuration Data Response",
}

// AddressRange classifies an EndpointMultiplexingAddress into one of the
// allocation's four buckets.
type AddressRange int

const (
	RangeReserved AddressRange = iota
	RangeFreeUse
	RangePublicSpec
	RangeCompanySpecific
)

func (r AddressRange) String() string {
	switch r {
	case RangeFreeUse:
		return "free use"
	case RangePublicSpec:
		return "public specification"
	case RangeCompanySpecific:
		return "company specific"
	default:
		return "reserved"
	}
}

// Range reports which allocation range a falls in. Addresses with a
// well-known Description still report their containing range here;
// Description and Range are independent lookups, same as the reference.
func (a EndpointMultiplexingAddress) Range() AddressRange {
	switch {
	case a >= RangeFreeUseLow && a <= RangeFreeUseHigh:
		return RangeFreeUse
	case a >= RangePublicSpecLow && a <= RangePublicSpecHigh:
		return RangePublicSpec
	case a >= RangeCompanySpecificLow && a <= RangeCompanySpecificHigh:
		return RangeCompanySpecific
	default:
		return RangeReserved
	}
}

// Description returns the well-known name for addresses the allocation
// names explicitly; ok is false for everything else, including otherwise
// in-range addresses with no assigned name.
func (a EndpointMultiplexingAddress) Description() (string, bool) {
	d, ok := wellKnownDescriptions[a]
	return d, ok
}

func (a EndpointMultiplexingAddress) String() string {
	if d, ok := a.Description(); ok {
		return fmt.Sprintf("EndpointMultiplexingAddress{0x%04x, description:%q}", uint16(a), d)
	}
	return fmt.Sprintf("EndpointMultiplexingAddress{0x%04x, range:%s}", uint16(a), a.Range())
}
