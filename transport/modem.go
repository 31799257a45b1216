// Package transport provides the one concrete dectmac.Modem binding this
// module ships: a serial link to a real modem, framed with the protocol
// described in protocol.go. It is built the same way the teacher's
// RunNPI/npiPhyReader/npiPhyWriter trio is: a reader goroutine and a
// writer goroutine either side of the raw io.ReadWriteCloser, plus a
// mutex-guarded pend map that the reader goroutine resolves when an ack
// arrives, matching requests to their acks.
package transport

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jacobsa/go-serial/serial"

	"github.com/hophop-go/dectmac/dectmac"
)

// ackTimeout bounds how long issue waits for the modem to acknowledge a
// request before giving up; a real link that never replies at all is a
// hardware fault, not a protocol-level condition the driver above us
// should have to reason about.
const ackTimeout = 3 * time.Second

// ackError reports a nonzero status byte in an ack frame: the modem
// rejected the request itself, before any asynchronous work began.
type ackError struct {
	cmd    uint8
	status uint8
}

func (e ackError) Error() string {
	return fmt.Sprintf("transport: modem rejected command %d with status %d", e.cmd, e.status)
}

// SerialModem implements dectmac.Modem over a serial link, exactly the
// way NewSerialPHY+RunNPI implement the teacher's SMac NPI transport over
// the same kind of link.
type SerialModem struct {
	phy    io.ReadWriteCloser
	writes chan []byte
	halt   chan struct{}
	logger *log.Logger

	mu      sync.Mutex
	pending map[uint8]chan ackError

	handler func(dectmac.RawEvent)
}

// NewSerialModem opens path at baud exactly as the teacher's NewSerialPHY
// does, then wires up the reader/writer goroutines around it.
func NewSerialModem(path string, baud uint) (*SerialModem, error) {
	opts := serial.OpenOptions{
		PortName:              path,
		BaudRate:              baud,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
		MinimumReadSize:       1,
	}
	phy, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("transport: opening %s: %w", path, err)
	}
	return newSerialModem(phy), nil
}

func newSerialModem(phy io.ReadWriteCloser) *SerialModem {
	m := &SerialModem{
		phy:     phy,
		writes:  make(chan []byte, 4),
		halt:    make(chan struct{}),
		logger:  log.NewWithOptions(os.Stderr, log.Options{Prefix: "transport"}),
		pending: make(map[uint8]chan ackError),
	}
	go frameReader(phy, m.onAck, m.onEvent, m.halt, m.logger)
	go frameWriter(phy, m.writes, m.halt)
	return m
}

// Close shuts down both goroutines and the underlying link.
func (m *SerialModem) Close() error {
	closeHalt(m.halt)
	return m.phy.Close()
}

func (m *SerialModem) SetEventHandler(h func(dectmac.RawEvent)) {
	m.handler = h
}

func (m *SerialModem) onAck(cmd, status uint8) {
	m.mu.Lock()
	ch, ok := m.pending[cmd]
	if ok {
		delete(m.pending, cmd)
	}
	m.mu.Unlock()
	if !ok {
		m.logger.Warn("transport: unsolicited ack", "cmd", cmd)
		return
	}
	ch <- ackError{cmd: cmd, status: status}
}

func (m *SerialModem) onEvent(kind uint8, payload []byte) {
	ev, err := decodeEvent(kind, payload)
	if err != nil {
		m.logger.Error("transport: dropping unparseable event", "err", err)
		return
	}
	if m.handler != nil {
		m.handler(ev)
	}
}

// issue writes a request frame for cmd and blocks for its ack. A single
// outstanding request per command is all this protocol ever needs,
// matching DectPhy's single-owner discipline.
func (m *SerialModem) issue(cmd uint8, payload []byte) error {
	ch := make(chan ackError, 1)
	m.mu.Lock()
	m.pending[cmd] = ch
	m.mu.Unlock()

	select {
	case m.writes <- serializeRequest(cmd, payload):
	case <-m.halt:
		return fmt.Errorf("transport: link is down")
	}

	select {
	case ack := <-ch:
		if ack.status != 0 {
			return ack
		}
		return nil
	case <-m.halt:
		return fmt.Errorf("transport: link is down")
	case <-time.After(ackTimeout):
		m.mu.Lock()
		delete(m.pending, cmd)
		m.mu.Unlock()
		return fmt.Errorf("transport: modem did not acknowledge command %d within %s", cmd, ackTimeout)
	}
}

func (m *SerialModem) Init() error       { return m.issue(cmdInit, nil) }
func (m *SerialModem) LatencyGet() error { return m.issue(cmdLatencyGet, nil) }
func (m *SerialModem) TimeGet() error    { return m.issue(cmdTimeGet, nil) }

func (m *SerialModem) Configure(p dectmac.ConfigParams) error {
	return m.issue(cmdConfigure, configurePayload(p))
}

func (m *SerialModem) Activate(mode dectmac.RadioMode) error {
	return m.issue(cmdActivate, activatePayload(mode))
}

func (m *SerialModem) Rx(p dectmac.RxParams) error {
	return m.issue(cmdRx, rxPayload(p))
}

func (m *SerialModem) Tx(p dectmac.TxParams) error {
	return m.issue(cmdTx, txPayload(p))
}

func (m *SerialModem) Rssi(p dectmac.RssiParams) error {
	return m.issue(cmdRssi, rssiPayload(p))
}

var _ dectmac.Modem = (*SerialModem)(nil)
