package numbers

// Version is the only value the MAC Header Type's version field may carry
// (Section 6.3.2). Anything else is rejected at parse.
const Version uint8 = 0

// MacSecurity is the MAC Header Security field (Table 6.3.2-1).
type MacSecurity uint8

const (
	SecurityNotUsed   MacSecurity = 0
	SecurityUsedNoIE  MacSecurity = 1
	SecurityUsedWithIE MacSecurity = 2
)

// HeaderType is the MAC Header Type field (Table 6.3.2-2), selecting which
// common subheader follows the header byte.
type HeaderType uint8

const (
	HeaderTypeDataMacPdu  HeaderType = 0x0
	HeaderTypeBeacon      HeaderType = 0x1
	HeaderTypeUnicast     HeaderType = 0x2
	HeaderTypeRdBroadcast HeaderType = 0x3
	HeaderTypeEscape      HeaderType = 0xf
)

// MuxExt is the MAC Extension field (Table 6.3.4-1) selecting an IE's
// length encoding and the bit width of its type.
type MuxExt uint8

const (
	MuxExtNoLengthField MuxExt = 0b00
	MuxExtLength8Bit    MuxExt = 0b01
	MuxExtLength16Bit   MuxExt = 0b10
	MuxExtShortIE       MuxExt = 0b11
)
