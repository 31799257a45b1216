package transport

import (
	"io"

	"github.com/charmbracelet/log"
)

// frameReader has the same job as the teacher's npiPhyReader: turn a
// stream of bytes that may split or coalesce frames arbitrarily into a
// sequence of validated frames, one at a time. Unlike the teacher's
// single two-shaped OTA/Control wire, this one has two frame shapes of
// its own (ack, event) distinguished by start character, with the ack
// frame's fixed 4-byte length known up front and the event frame's
// length read from its own length field.
func frameReader(phy io.Reader, onAck func(cmd, status uint8), onEvent func(kind uint8, payload []byte), halt chan struct{}, logger *log.Logger) {
	serbufBacking := make([]byte, 65536)
	frame := make([]byte, 0, 256)

	const (
		stateSeekStart = iota
		stateAckBody
		stateEventLen
		stateEventBody
	)
	state := stateSeekStart
	var eventKind uint8
	var eventLen int

	for {
		serbuf := serbufBacking[:cap(serbufBacking)]
		n, err := phy.Read(serbuf)
		if err != nil {
			closeHalt(halt)
			return
		}
		serbuf = serbuf[:n]

		for len(serbuf) > 0 {
			b := serbuf[0]
			serbuf = serbuf[1:]

			switch state {
			case stateSeekStart:
				switch b {
				case startAck:
					frame = frame[:0]
					frame = append(frame, b)
					state = stateAckBody
				case startEvent:
					frame = frame[:0]
					frame = append(frame, b)
					state = stateEventLen
				}
			case stateAckBody:
				frame = append(frame, b)
				if len(frame) == 4 {
					if xorChecksum(frame[1:3]) == frame[3] {
						onAck(frame[1], frame[2])
					} else {
						logger.Warn("transport: ack frame failed checksum")
					}
					state = stateSeekStart
				}
			case stateEventLen:
				frame = append(frame, b)
				switch len(frame) {
				case 2:
					eventKind = b
				case 4:
					eventLen = int(frame[2])<<8 | int(frame[3])
					state = stateEventBody
				}
			case stateEventBody:
				frame = append(frame, b)
				if len(frame) == 4+eventLen+1 {
					payload := frame[4 : 4+eventLen]
					if xorChecksum(frame[1:4+eventLen]) == frame[len(frame)-1] {
						onEvent(eventKind, payload)
					} else {
						logger.Warn("transport: event frame failed checksum", "kind", eventKind)
					}
					state = stateSeekStart
				}
			}
		}
	}
}

func closeHalt(halt chan struct{}) {
	select {
	case <-halt:
	default:
		close(halt)
	}
}
