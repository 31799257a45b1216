package numbers

import "fmt"

// IEType6bit is an IE type as used with MAC Extension encodings 00/01/10
// (Table 6.3.4-2).
//
// Invariant: the inner value only ever has its lowest 6 bits set. Nothing
// outside this file constructs a value violating that, since the only
// constructor is NewIEType6bit.
type IEType6bit struct {
	v uint8
}

// ie6bitDescriptions holds the well-known Table 6.3.4-2 codes. Named the way the
// original table does, minus its "IE"/"message" suffixes.
var ie6bitDescriptions = map[uint8]string{
	0b000000: "Padding",
	0b000001: "Higher layer signalling - flow 1",
	0b000010: "Higher layer signalling - flow 2",
	0b000011: "User plane data - flow 1",
	0b000100: "User plane data - flow 2",
	0b000101: "User plane data - flow 3",
	0b000110: "User plane data - flow 4",
	0b001000: "Network Beacon",
	0b001001: "Cluster Beacon",
	0b001010: "Association Request",
	0b001011: "Association Response",
	0b001100: "Association Release",
	0b001101: "Reconfiguration Request",
	0b001110: "Reconfiguration Response",
	0b001111: "Additional MAC messages",
	0b010000: "MAC Security Info",
	0b010001: "Route Info",
	0b010010: "Resource allocation",
	0b010011: "Random Access Resource",
	0b010100: "RD capability",
	0b010101: "Neighbouring",
	0b010110: "Broadcast Indication",
	0b010111: "Group Assignment",
	0b011000: "Load Info",
	0b011001: "Measurement Report",
	0b011010: "Source Routing",
	0b011011: "Joining Beacon",
	0b011100: "Joining Information",
	0b011110: "Escape",
	0b011111: "IE type extension",
}

// Named constants for the codes enumerated above, mirroring the "ie6bit"
// module of the reference numbers crate.
var (
	IE6bitPadding                     = IEType6bit{0b000000}
	IE6bitHigherLayerSignallingFlow1  = IEType6bit{0b000001}
	IE6bitHigherLayerSignallingFlow2  = IEType6bit{0b000010}
	IE6bitUserPlaneDataFlow1          = IEType6bit{0b000011}
	IE6bitUserPlaneDataFlow2          = IEType6bit{0b000100}
	IE6bitUserPlaneDataFlow3          = IEType6bit{0b000101}
	IE6bitUserPlaneDataFlow4          = IEType6bit{0b000110}
	IE6bitNetworkBeacon               = IEType6bit{0b001000}
	IE6bitClusterBeacon               = IEType6bit{0b001001}
	IE6bitAssociationRequest          = IEType6bit{0b001010}
	IE6bitAssociationResponse         = IEType6bit{0b001011}
	IE6bitAssociationRelease          = IEType6bit{0b001100}
	IE6bitReconfigurationRequest      = IEType6bit{0b001101}
	IE6bitReconfigurationResponse     = IEType6bit{0b001110}
	IE6bitAdditionalMacMessages       = IEType6bit{0b001111}
	IE6bitMacSecurityInfo             = IEType6bit{0b010000}
	IE6bitRouteInfo                   = IEType6bit{0b010001}
	IE6bitResourceAllocation          = IEType6bit{0b010010}
	IE6bitRandomAccessResource        = IEType6bit{0b010011}
	IE6bitRdCapability                = IEType6bit{0b010100}
	IE6bitNeighbouring                = IEType6bit{0b010101}
	IE6bitBroadcastIndication         = IEType6bit{0b010110}
	IE6bitGroupAssignment             = IEType6bit{0b010111}
	IE6bitLoadInfo                    = IEType6bit{0b011000}
	IE6bitMeasurementReport           = IEType6bit{0b011001}
	IE6bitSourceRouting               = IEType6bit{0b011010}
	IE6bitJoiningBeacon               = IEType6bit{0b011011}
	IE6bitJoiningInformation          = IEType6bit{0b011100}
	IE6bitEscape                      = IEType6bit{0b011110}
	IE6bitIETypeExtension             = IEType6bit{0b011111}
)

// NewIEType6bit validates that value has no bits set above the lowest 6 and
// wraps it.
func NewIEType6bit(value uint8) (IEType6bit, error) {
	if value&^0x3f != 0 {
		return IEType6bit{}, ExcessiveBitsSet{}
	}
	return IEType6bit{value}, nil
}

// Byte returns the raw 6-bit value.
func (t IEType6bit) Byte() uint8 { return t.v }

// Description looks up Table 6.3.4-2; ok is false for reserved/unallocated
// codes, which are still accepted values, just without a name.
func (t IEType6bit) Description() (string, bool) {
	d, ok := ie6bitDescriptions[t.v]
	return d, ok
}

func (t IEType6bit) String() string {
	if d, ok := t.Description(); ok {
		return fmt.Sprintf("IEType6bit{0x%02x, %q}", t.v, d)
	}
	return fmt.Sprintf("IEType6bit{0x%02x}", t.v)
}

// IEType5bit is an IE type as used with MAC Extension encoding 11 (Short
// IE). It folds Tables 6.3.4-3 and 6.3.4-4 together by composing the
// embedded length bit into the key, the same way the reference
// implementation does: bit 5 is the length (0 or 1 byte of payload), bits
// 4-0 are the code within that length's table.
//
// Invariant: the inner value only ever has its lowest 6 bits set.
type IEType5bit struct {
	v uint8
}

var ie5bitDescriptions = map[uint8]string{
	0b0_00000: "Padding",
	0b0_00001: "Configuration Request",
	0b0_00010: "Keep alive",
	0b0_10000: "MAC Security Info",
	0b0_11110: "Escape",

	0b1_00000: "Padding",
	0b1_00001: "Radio Device Status",
	0b1_00010: "RD capability short",
	0b1_00011: "Association Control",
	0b1_11110: "Escape",
}

var (
	IE5bitLen0Padding              = IEType5bit{0b0_00000}
	IE5bitLen0ConfigurationRequest = IEType5bit{0b0_00001}
	IE5bitLen0KeepAlive            = IEType5bit{0b0_00010}
	IE5bitLen0MacSecurityInfo      = IEType5bit{0b0_10000}
	IE5bitLen0Escape               = IEType5bit{0b0_11110}

	IE5bitLen1Padding            = IEType5bit{0b1_00000}
	IE5bitLen1RadioDeviceStatus  = IEType5bit{0b1_00001}
	IE5bitLen1RdCapabilityShort  = IEType5bit{0b1_00010}
	IE5bitLen1AssociationControl = IEType5bit{0b1_00011}
	IE5bitLen1Escape             = IEType5bit{0b1_11110}
)

// Len returns the IE's embedded payload length: 0 or 1.
func (t IEType5bit) Len() int { return int(t.v >> 5) }

// Value returns the numeric code within the length's table (5 bit).
func (t IEType5bit) Value() uint8 { return t.v & 0x1f }

// Composite returns the combined length-and-value bits, as carried on the
// wire in the low 6 bits of the IE head byte.
func (t IEType5bit) Composite() uint8 { return t.v }

// Description looks up Tables 6.3.4-3/-4; ok is false for reserved codes.
func (t IEType5bit) Description() (string, bool) {
	d, ok := ie5bitDescriptions[t.v]
	return d, ok
}

// NewIEType5bitFromLenAndValue builds an IEType5bit from its components.
// Errs if len is not 0 or 1, or value has bits set above the lowest 5.
func NewIEType5bitFromLenAndValue(length int, value uint8) (IEType5bit, error) {
	if length < 0 || length > 1 || value&^0x1f != 0 {
		return IEType5bit{}, ExcessiveBitsSet{}
	}
	return IEType5bit{(uint8(length) << 5) | value}, nil
}

// NewIEType5bitFromComposite builds an IEType5bit from its combined
// length-and-value bits. Errs if composite has bits set above the lowest 6.
func NewIEType5bitFromComposite(composite uint8) (IEType5bit, error) {
	if composite&^0x3f != 0 {
		return IEType5bit{}, ExcessiveBitsSet{}
	}
	return IEType5bit{composite}, nil
}

func (t IEType5bit) String() string {
	if d, ok := t.Description(); ok {
		return fmt.Sprintf("IEType5bit{len:%d, value:0x%02x, %q}", t.Len(), t.Value(), d)
	}
	return fmt.Sprintf("IEType5bit{len:%d, value:0x%02x}", t.Len(), t.Value())
}
