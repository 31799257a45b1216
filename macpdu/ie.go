package macpdu

import (
	"encoding/binary"
	"math"

	"github.com/hophop-go/dectmac/numbers"
)

// InformationElement is a single IE of the MAC layer tail stream: a head
// byte plus a payload slice borrowed from the input. Invariant: the
// payload length always matches what the head encodes (0/1 byte for a
// Short IE, the explicit 8- or 16-bit length field otherwise).
type InformationElement struct {
	head    uint8
	payload []byte
}

// AnyIeType unifies the two IE type namespaces an IE's head can select.
// Exactly one of Type6bit/Type5bit is populated, selected by IsShort.
type AnyIeType struct {
	IsShort  bool
	Type6bit numbers.IEType6bit
	Type5bit numbers.IEType5bit
}

// New6bitWithLength builds an IE carrying an explicit-length 6-bit type.
// It picks the 8-bit length form when payload fits in a byte, the 16-bit
// form otherwise; it errors if payload exceeds 65535 bytes.
func New6bitWithLength(t numbers.IEType6bit, payload []byte) (InformationElement, error) {
	if len(payload) > math.MaxUint16 {
		return InformationElement{}, InputLengthError{}
	}
	var ext numbers.MuxExt
	if len(payload) <= math.MaxUint8 {
		ext = numbers.MuxExtLength8Bit
	} else {
		ext = numbers.MuxExtLength16Bit
	}
	head := t.Byte() | (uint8(ext) << 6)
	return InformationElement{head: head, payload: payload}, nil
}

// New5bit builds an IE carrying a Short IE (5-bit type, embedded length).
// It errors unless len(payload) equals the type's embedded length (0 or 1).
func New5bit(t numbers.IEType5bit, payload []byte) (InformationElement, error) {
	if len(payload) != t.Len() {
		return InformationElement{}, InputLengthError{}
	}
	head := t.Composite() | (uint8(numbers.MuxExtShortIE) << 6)
	return InformationElement{head: head, payload: payload}, nil
}

// ParseIE reads one IE from the front of *data, advancing *data past it on
// success. On failure *data is cleared to prevent further decoding, since
// the stream's framing is no longer trustworthy once one IE fails to
// parse.
func ParseIE(data *[]byte) (InformationElement, error) {
	buf := *data
	if len(buf) < 1 {
		return InformationElement{}, ParsingError{}
	}
	head := buf[0]
	buf = buf[1:]

	macExt := numbers.MuxExt(head >> 6)
	var length int
	switch macExt {
	case numbers.MuxExtNoLengthField:
		// TODO: populate the IE-type -> implicit-length table from ETSI
		// TS 103 636-4 Table 6.3.4-2; until then every MAC-ext 00 IE is
		// unparseable.
		*data = nil
		return InformationElement{}, ParsingError{}
	case numbers.MuxExtLength8Bit:
		if len(buf) < 1 {
			*data = nil
			return InformationElement{}, ParsingError{}
		}
		length = int(buf[0])
		buf = buf[1:]
	case numbers.MuxExtLength16Bit:
		if len(buf) < 2 {
			*data = nil
			return InformationElement{}, ParsingError{}
		}
		length = int(binary.BigEndian.Uint16(buf[:2]))
		buf = buf[2:]
	case numbers.MuxExtShortIE:
		length = int((head >> 5) & 1)
	}

	if len(buf) < length {
		*data = nil
		return InformationElement{}, ParsingError{}
	}
	payload := buf[:length]
	*data = buf[length:]
	return InformationElement{head: head, payload: payload}, nil
}

// IEStream is the lazy sequence parse_stream produces in the reference
// implementation. Call Next until ok is false; once an error is yielded,
// every subsequent Next reports ok == false with no error, matching the
// "terminates on first error" contract.
type IEStream struct {
	data []byte
	done bool
}

// ParseStream returns a stream over data. It is finite: it yields no more
// items once data is exhausted, or once a ParseIE call fails.
func ParseStream(data []byte) *IEStream {
	return &IEStream{data: data}
}

// Next returns the next IE, or ok == false when the stream is exhausted.
// err is non-nil exactly once, on the element that failed to parse; no
// further elements follow it.
func (s *IEStream) Next() (ie InformationElement, err error, ok bool) {
	if s.done || len(s.data) == 0 {
		return InformationElement{}, nil, false
	}
	ie, parseErr := ParseIE(&s.data)
	if parseErr != nil {
		s.done = true
		return InformationElement{}, parseErr, true
	}
	return ie, nil, true
}

// IENumber dispatches on the head's MAC-ext bits to report which of the
// two type namespaces this IE's code lives in.
func (ie InformationElement) IENumber() AnyIeType {
	low6 := ie.head & 0x3f
	if numbers.MuxExt(ie.head>>6) == numbers.MuxExtShortIE {
		t, err := numbers.NewIEType5bitFromComposite(low6)
		if err != nil {
			panic("head bits were masked to 6 bits by construction")
		}
		return AnyIeType{IsShort: true, Type5bit: t}
	}
	t, err := numbers.NewIEType6bit(low6)
	if err != nil {
		panic("head bits were masked to 6 bits by construction")
	}
	return AnyIeType{IsShort: false, Type6bit: t}
}

// Payload returns the IE's payload bytes, borrowed from the original input.
func (ie InformationElement) Payload() []byte { return ie.payload }

// Serialize appends the IE's wire encoding (head, length field if any,
// payload) to w and returns the result, in the style of append().
func (ie InformationElement) Serialize(w []byte) []byte {
	w = append(w, ie.head)
	switch numbers.MuxExt(ie.head >> 6) {
	case numbers.MuxExtLength8Bit:
		w = append(w, uint8(len(ie.payload)))
	case numbers.MuxExtLength16Bit:
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(ie.payload)))
		w = append(w, lenBuf[:]...)
	}
	return append(w, ie.payload...)
}
