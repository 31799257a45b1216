// Package macpdu implements the zero-copy codec for the DECT-2020 NR MAC
// PDU header and its trailing stream of Information Elements (ETSI TS 103
// 636-4 Section 6.3). Nothing here touches the modem; it only turns byte
// slices into typed views over the same backing array, and back.
package macpdu

// ParsingError is returned whenever a MAC PDU header or an Information
// Element cannot be parsed out of the given bytes: truncated input, a
// disallowed MAC version, an unrecognized header type, or a MAC-ext 00 IE
// whose implicit length this package does not yet know (see the MAC-ext 00
// length table note in DESIGN.md). It carries no further structure; none
// of these conditions are actionable beyond "the input was malformed".
type ParsingError struct{}

func (ParsingError) Error() string { return "malformed MAC PDU or information element" }

// InputLengthError is returned by the IE constructors when the supplied
// payload cannot be expressed by the requested encoding: too long for a
// 16-bit length field, or not matching a Short IE's embedded length.
type InputLengthError struct{}

func (InputLengthError) Error() string { return "payload length does not fit the chosen IE encoding" }
