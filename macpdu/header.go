package macpdu

import (
	"encoding/binary"

	"github.com/hophop-go/dectmac/numbers"
)

// MacHeaderType is the leading octet of every MAC PDU (Table 6.3.2-1/-2).
type MacHeaderType struct {
	b uint8
}

// Version is always 0 for a successfully parsed header; Parse
// rejects anything else before this type is ever constructed.
func (h MacHeaderType) Version() uint8 { return h.b >> 6 }

// Security reports the MAC Header Security field.
func (h MacHeaderType) Security() numbers.MacSecurity {
	return numbers.MacSecurity((h.b >> 4) & 0x3)
}

// HeaderType reports which common subheader follows.
func (h MacHeaderType) HeaderType() numbers.HeaderType {
	return numbers.HeaderType(h.b & 0x0f)
}

// CommonHeader is implemented by the four fixed-width subheader views.
// It is a closed set; the only way to obtain one is Parse.
type CommonHeader interface {
	isCommonHeader()
}

// DataMacPdu is the 2-byte common subheader used with HeaderTypeDataMacPdu.
type DataMacPdu struct {
	b *[2]byte
}

func (DataMacPdu) isCommonHeader() {}

// Reset reports the subheader's reset bit.
func (d DataMacPdu) Reset() bool { return d.b[0]&0x10 != 0 }

// SequenceNumber reports the 12-bit sequence number.
func (d DataMacPdu) SequenceNumber() uint16 {
	return (uint16(d.b[0]&0x0f) << 8) | uint16(d.b[1])
}

// Beacon is the 7-byte common subheader used with HeaderTypeBeacon.
type Beacon struct {
	b *[7]byte
}

func (Beacon) isCommonHeader() {}

// NetworkID reports the 24-bit network identifier.
func (b Beacon) NetworkID() uint32 {
	return uint32(b.b[0])<<16 | uint32(b.b[1])<<8 | uint32(b.b[2])
}

// TransmitterAddress reports the 32-bit transmitter long RD ID.
func (b Beacon) TransmitterAddress() uint32 {
	return binary.BigEndian.Uint32(b.b[3:7])
}

// Unicast is the 10-byte common subheader used with HeaderTypeUnicast.
type Unicast struct {
	b *[10]byte
}

func (Unicast) isCommonHeader() {}

// Reset reports the subheader's reset bit.
func (u Unicast) Reset() bool { return u.b[0]&0x10 != 0 }

// SequenceNumber reports the 12-bit sequence number.
func (u Unicast) SequenceNumber() uint16 {
	return (uint16(u.b[0]&0x0f) << 8) | uint16(u.b[1])
}

// ReceiverAddress reports the 32-bit receiver long RD ID.
func (u Unicast) ReceiverAddress() uint32 {
	return binary.BigEndian.Uint32(u.b[2:6])
}

// TransmitterAddress reports the 32-bit transmitter long RD ID.
func (u Unicast) TransmitterAddress() uint32 {
	return binary.BigEndian.Uint32(u.b[6:10])
}

// RdBroadcast is the 6-byte common subheader used with HeaderTypeRdBroadcast.
type RdBroadcast struct {
	b *[6]byte
}

func (RdBroadcast) isCommonHeader() {}

// Reset reports the subheader's reset bit.
func (r RdBroadcast) Reset() bool { return r.b[0]&0x10 != 0 }

// SequenceNumber reports the 12-bit sequence number.
func (r RdBroadcast) SequenceNumber() uint16 {
	return (uint16(r.b[0]&0x0f) << 8) | uint16(r.b[1])
}

// TransmitterAddress reports the 32-bit transmitter long RD ID.
func (r RdBroadcast) TransmitterAddress() uint32 {
	return binary.BigEndian.Uint32(r.b[2:6])
}

// Header is a parsed, borrowed view over a MAC PDU: the header octet, the
// fixed-width common subheader it selects, and the unconsumed remainder
// (the IE stream). It never copies the input.
type Header struct {
	Head   MacHeaderType
	Common CommonHeader
	Tail   []byte
}

// Parse reads a MAC PDU header out of buffer. It rejects any header whose
// version field is nonzero, and any header_type other than the four known
// common subheaders (including 0xf Escape). The returned Header borrows
// buffer; Tail is a suffix of buffer.
func Parse(buffer []byte) (Header, error) {
	if len(buffer) < 1 {
		return Header{}, ParsingError{}
	}
	head := buffer[0]
	if head&0xc0 != 0 {
		return Header{}, ParsingError{}
	}
	rest := buffer[1:]

	var common CommonHeader
	switch numbers.HeaderType(head & 0x0f) {
	case numbers.HeaderTypeDataMacPdu:
		if len(rest) < 2 {
			return Header{}, ParsingError{}
		}
		common = DataMacPdu{(*[2]byte)(rest[:2])}
		rest = rest[2:]
	case numbers.HeaderTypeBeacon:
		if len(rest) < 7 {
			return Header{}, ParsingError{}
		}
		common = Beacon{(*[7]byte)(rest[:7])}
		rest = rest[7:]
	case numbers.HeaderTypeUnicast:
		if len(rest) < 10 {
			return Header{}, ParsingError{}
		}
		common = Unicast{(*[10]byte)(rest[:10])}
		rest = rest[10:]
	case numbers.HeaderTypeRdBroadcast:
		if len(rest) < 6 {
			return Header{}, ParsingError{}
		}
		common = RdBroadcast{(*[6]byte)(rest[:6])}
		rest = rest[6:]
	default:
		return Header{}, ParsingError{}
	}

	return Header{
		Head:   MacHeaderType{head},
		Common: common,
		Tail:   rest,
	}, nil
}

// TailItems returns an iterator-like sequence of the IEs in the tail,
// equivalent to calling ParseStream(h.Tail).
func (h Header) TailItems() *IEStream {
	return ParseStream(h.Tail)
}
