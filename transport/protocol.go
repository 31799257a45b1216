// Package transport adapts the teacher repo's NPI serial frame engine
// (start-character scanning, XOR checksum, pend-map request/reply
// matching) to a small request/event protocol that speaks the operations
// a dectmac.Modem needs: one request frame per issued command, one event
// frame per DectEvent the modem reports back.
//
// Request frame, host -> modem:
//
//	0xD0       Start Character
//	XX         1-byte Command
//	YY YY      2-byte big-endian Payload Length
//	[payload]
//	CC         1-byte XOR checksum over Command..Payload
//
// Ack frame, modem -> host (quick synchronous acknowledgement of a
// request, resolved against the one in-flight command; no handle field is
// needed because DectPhy never issues more than one command at a time):
//
//	0xAC       Start Character
//	XX         1-byte Command being acknowledged
//	SS         1-byte Status (0 = accepted)
//	CC         1-byte XOR checksum over Command..Status
//
// Event frame, modem -> host (one per DectEvent reported asynchronously):
//
//	0xE0       Start Character
//	KK         1-byte event Kind (dectmac.EventKind)
//	YY YY      2-byte big-endian Payload Length
//	[payload, kind-dependent layout, see decodeEvent]
//	CC         1-byte XOR checksum over Kind..Payload
package transport

import (
	"encoding/binary"
	"fmt"

	"github.com/hophop-go/dectmac/dectmac"
)

const (
	startRequest = 0xd0
	startAck     = 0xac
	startEvent   = 0xe0
)

// Command IDs, one per dectmac.Modem method.
const (
	cmdInit = iota
	cmdLatencyGet
	cmdConfigure
	cmdActivate
	cmdTimeGet
	cmdRx
	cmdTx
	cmdRssi
)

// xorChecksum matches the teacher's NPI checksum exactly: XOR of every
// byte in buf.
func xorChecksum(buf []byte) uint8 {
	var x uint8
	for _, b := range buf {
		x ^= b
	}
	return x
}

// serializeRequest builds a full request frame for cmd carrying payload.
func serializeRequest(cmd uint8, payload []byte) []byte {
	frame := make([]byte, 0, 5+len(payload))
	frame = append(frame, startRequest, cmd, uint8(len(payload)>>8), uint8(len(payload)))
	frame = append(frame, payload...)
	frame = append(frame, xorChecksum(frame[1:]))
	return frame
}

// configurePayload / rxPayload / txPayload / rssiPayload encode the one
// request each carries beyond its command byte. Init, LatencyGet, and
// TimeGet carry no payload at all.

func configurePayload(p dectmac.ConfigParams) []byte {
	buf := make([]byte, 6)
	buf[0] = p.BandGroupIndex
	buf[1] = p.HarqRxProcessCount
	binary.BigEndian.PutUint32(buf[2:6], p.HarqRxExpiryTimeUs)
	return buf
}

func activatePayload(m dectmac.RadioMode) []byte {
	return []byte{uint8(m)}
}

func rxPayload(p dectmac.RxParams) []byte {
	buf := make([]byte, 22)
	binary.BigEndian.PutUint64(buf[0:8], p.StartTime)
	binary.BigEndian.PutUint32(buf[8:12], p.Handle)
	binary.BigEndian.PutUint32(buf[12:16], p.NetworkID)
	binary.BigEndian.PutUint16(buf[16:18], p.Carrier)
	binary.BigEndian.PutUint32(buf[18:22], p.Duration)
	return buf
}

func txPayload(p dectmac.TxParams) []byte {
	buf := make([]byte, 0, 22+1+len(p.Pcc)+2+len(p.Pdc))
	var head [22]byte
	binary.BigEndian.PutUint64(head[0:8], p.StartTime)
	binary.BigEndian.PutUint32(head[8:12], p.Handle)
	binary.BigEndian.PutUint32(head[12:16], p.NetworkID)
	binary.BigEndian.PutUint16(head[16:18], p.Carrier)
	buf = append(buf, head[:18]...)
	buf = append(buf, uint8(len(p.Pcc)))
	buf = append(buf, p.Pcc...)
	var pdcLen [2]byte
	binary.BigEndian.PutUint16(pdcLen[:], uint16(len(p.Pdc)))
	buf = append(buf, pdcLen[:]...)
	buf = append(buf, p.Pdc...)
	return buf
}

func rssiPayload(p dectmac.RssiParams) []byte {
	buf := make([]byte, 17)
	binary.BigEndian.PutUint64(buf[0:8], p.StartTime)
	binary.BigEndian.PutUint32(buf[8:12], p.Handle)
	binary.BigEndian.PutUint16(buf[12:14], p.Carrier)
	binary.BigEndian.PutUint16(buf[14:16], p.Duration)
	buf[16] = p.ReportingInterval
	return buf
}

// latencyInfoWireSize is the encoded size of a dectmac.LatencyInfo: 27
// big-endian uint32 fields in declaration order.
const latencyInfoWireSize = 27 * 4

func encodeLatencyInfo(l dectmac.LatencyInfo) []byte {
	buf := make([]byte, latencyInfoWireSize)
	i := 0
	put := func(v uint32) {
		binary.BigEndian.PutUint32(buf[i:i+4], v)
		i += 4
	}
	for _, row := range l.RadioModeTransition {
		for _, v := range row {
			put(v)
		}
	}
	for _, v := range l.ScheduledOperationTransition {
		put(v)
	}
	for _, v := range l.ScheduledOperationStartup {
		put(v)
	}
	put(l.ReceiveIdleToActive)
	put(l.ReceiveActiveToIdleRssi)
	put(l.ReceiveActiveToIdleRx)
	put(l.ReceiveActiveToIdleRxRssi)
	put(l.ReceiveStopToRfOff)
	put(l.TransmitIdleToActive)
	put(l.TransmitActiveToIdle)
	put(l.StackInitialization)
	put(l.StackDeinitialization)
	put(l.StackConfiguration)
	put(l.StackActivation)
	put(l.StackDeactivation)
	return buf
}

func decodeLatencyInfo(buf []byte) (dectmac.LatencyInfo, error) {
	if len(buf) != latencyInfoWireSize {
		return dectmac.LatencyInfo{}, fmt.Errorf("transport: latency payload is %d bytes, want %d", len(buf), latencyInfoWireSize)
	}
	var l dectmac.LatencyInfo
	i := 0
	get := func() uint32 {
		v := binary.BigEndian.Uint32(buf[i : i+4])
		i += 4
		return v
	}
	for r := range l.RadioModeTransition {
		for c := range l.RadioModeTransition[r] {
			l.RadioModeTransition[r][c] = get()
		}
	}
	for j := range l.ScheduledOperationTransition {
		l.ScheduledOperationTransition[j] = get()
	}
	for j := range l.ScheduledOperationStartup {
		l.ScheduledOperationStartup[j] = get()
	}
	l.ReceiveIdleToActive = get()
	l.ReceiveActiveToIdleRssi = get()
	l.ReceiveActiveToIdleRx = get()
	l.ReceiveActiveToIdleRxRssi = get()
	l.ReceiveStopToRfOff = get()
	l.TransmitIdleToActive = get()
	l.TransmitActiveToIdle = get()
	l.StackInitialization = get()
	l.StackDeinitialization = get()
	l.StackConfiguration = get()
	l.StackActivation = get()
	l.StackDeactivation = get()
	return l, nil
}

// decodeEvent turns an event frame's kind byte and payload into a
// dectmac.RawEvent. Every event payload begins with an 8-byte big-endian
// Time field (unused by most kinds, but kept fixed-position so the
// framing stays uniform), followed by kind-specific fields.
func decodeEvent(kind uint8, payload []byte) (dectmac.RawEvent, error) {
	if len(payload) < 8 {
		return dectmac.RawEvent{}, fmt.Errorf("transport: event payload shorter than the fixed Time field")
	}
	ev := dectmac.RawEvent{
		Kind: dectmac.EventKind(kind),
		Time: binary.BigEndian.Uint64(payload[0:8]),
	}
	rest := payload[8:]

	switch ev.Kind {
	case dectmac.EventInit, dectmac.EventConfigure, dectmac.EventActivate, dectmac.EventTimeGet:
		if len(rest) != 2 {
			return dectmac.RawEvent{}, fmt.Errorf("transport: bring-up event payload must carry a 2-byte error code")
		}
		ev.ErrCode = binary.BigEndian.Uint16(rest)
	case dectmac.EventLatencyGet:
		l, err := decodeLatencyInfo(rest)
		if err != nil {
			return dectmac.RawEvent{}, err
		}
		ev.Latency = l
	case dectmac.EventCompleted:
		if len(rest) != 2 {
			return dectmac.RawEvent{}, fmt.Errorf("transport: completed event payload must carry a 2-byte completion code")
		}
		ev.CompletionCode = binary.BigEndian.Uint16(rest)
	case dectmac.EventPcc:
		if len(rest) < 1 {
			return dectmac.RawEvent{}, fmt.Errorf("transport: pcc event payload missing phy_type")
		}
		ev.PccPhyType = rest[0]
		header := make([]byte, len(rest)-1)
		copy(header, rest[1:])
		ev.PccHeader = header
	case dectmac.EventPccError:
		if len(rest) != 1 {
			return dectmac.RawEvent{}, fmt.Errorf("transport: pcc error event payload must carry a 1-byte error kind")
		}
		ev.PccError = dectmac.PccErrorKind(rest[0])
	case dectmac.EventPdc:
		data := make([]byte, len(rest))
		copy(data, rest)
		ev.PdcData = data
	case dectmac.EventPdcError:
		// no additional fields
	case dectmac.EventRssi:
		samples := make([]byte, len(rest))
		copy(samples, rest)
		ev.RssiSamples = samples
	default:
		return dectmac.RawEvent{}, fmt.Errorf("transport: unrecognized event kind %d", kind)
	}
	return ev, nil
}
