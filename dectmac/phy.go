package dectmac

import "sync/atomic"

// dectEvent is the internal, already-classified record the ISR-equivalent
// handler pushes into the event queue — the Go counterpart of the
// reference driver's DectEventOuter{time, event}. Unlike RawEvent (what a
// Modem hands the handler), this carries scratch-buffer offsets instead of
// byte slices, since by the time it is queued the relevant bytes have
// already been copied into the scratch buffer.
type dectEvent struct {
	kind EventKind
	time uint64

	errCode        uint16
	completionCode uint16
	latency        LatencyInfo

	pccLen int
	pccErr PccErrorKind

	pdcLen      int
	pdcOutOfSpace bool

	rssiStart, rssiEnd int
	rssiOk             bool
}

type phyState int32

const (
	stateUninit phyState = iota
	stateInitializing
	stateConfigured
	stateActive
	stateInOperation
)

// DectPhy is the single-owner capability handle for a DECT NR PHY
// session. Exactly one goroutine may be inside one of its methods at a
// time; nothing here is safe for concurrent use by design, matching the
// driver's single-consumer contract.
type DectPhy struct {
	modem   Modem
	events  *eventQueue
	scratch *scratchBuffer
	state   atomic.Int32
}

// NewDectPhy wraps modem in an uninitialized PHY handle. Call Init before
// any other method; calling anything else first panics.
func NewDectPhy(modem Modem) *DectPhy {
	return &DectPhy{
		modem:   modem,
		events:  newEventQueue(),
		scratch: newScratchBuffer(),
	}
}

// Init brings the PHY up: registers the event sink, initializes the
// modem, fetches and validates its latency table against the known
// firmware table, configures HARQ, and activates low-latency radio mode.
// Any event arriving out of this sequence is unrecoverable. Init may be
// called at most once per DectPhy.
func (p *DectPhy) Init() error {
	if !p.state.CompareAndSwap(int32(stateUninit), int32(stateInitializing)) {
		sequenceViolation("Init called more than once, or after a prior Init failed partway")
	}

	p.modem.SetEventHandler(p.handleEvent)

	if err := p.modem.Init(); err != nil {
		return ModemError{err}
	}
	if ev := p.events.receive(); ev.kind != EventInit {
		sequenceViolation("event before Init event")
	}

	if err := p.modem.LatencyGet(); err != nil {
		return ModemError{err}
	}
	ev := p.events.receive()
	if ev.kind != EventLatencyGet {
		sequenceViolation("expected LatencyGet event")
	}
	if !latencyIsExpected(ev.latency) {
		sequenceViolation("latency table does not match known firmware version")
	}

	if err := p.modem.Configure(defaultConfigParams); err != nil {
		return ModemError{err}
	}
	if ev := p.events.receive(); ev.kind != EventConfigure {
		sequenceViolation("expected Configure event")
	}
	p.state.Store(int32(stateConfigured))

	if err := p.modem.Activate(RadioModeLowLatency); err != nil {
		return ModemError{err}
	}
	if ev := p.events.receive(); ev.kind != EventActivate {
		sequenceViolation("expected Activate event")
	}
	p.state.Store(int32(stateActive))

	return nil
}

// beginOperation enforces the prologue check every public operation runs:
// no stale events left over from an abandoned operation, and the handle
// must currently be Active.
func (p *DectPhy) beginOperation() {
	if !p.events.drained() {
		sequenceViolation("operation began with stale events pending; a previous operation was abandoned")
	}
	if !p.state.CompareAndSwap(int32(stateActive), int32(stateInOperation)) {
		sequenceViolation("operation attempted while the PHY handle is not Active")
	}
}

func (p *DectPhy) endOperation() {
	p.state.Store(int32(stateActive))
}

// TimeGet returns the modem's current PHY time.
func (p *DectPhy) TimeGet() (uint64, error) {
	p.beginOperation()
	defer p.endOperation()

	if err := p.modem.TimeGet(); err != nil {
		return 0, ModemError{err}
	}
	ev := p.events.receive()
	if ev.kind != EventTimeGet {
		sequenceViolation("expected TimeGet event")
	}
	return ev.time, nil
}

// Rssi runs a single RSSI scan (48 subslots, one 24-slot reporting
// interval) on carrier and returns the scan's start time together with a
// guard over the collected samples. The guard must be released with
// Close before any further DectPhy operation.
func (p *DectPhy) Rssi(carrier uint16) (uint64, *RssiResult, error) {
	p.beginOperation()
	defer p.endOperation()

	p.scratch.clear()

	params := RssiParams{
		StartTime:         0,
		Handle:            rssiHandle,
		Carrier:           carrier,
		Duration:          rssiDuration,
		ReportingInterval: rssiReportingInterval,
	}
	if err := p.modem.Rssi(params); err != nil {
		return 0, nil, ModemError{err}
	}

	var startTime uint64
	var start, end int
	var haveResult bool

	for {
		ev := p.events.receive()
		switch ev.kind {
		case EventRssi:
			if haveResult {
				sequenceViolation("duplicate Rssi event")
			}
			if !ev.rssiOk {
				sequenceViolation("RSSI samples did not fit the scratch buffer for a single scan")
			}
			startTime, start, end = ev.time, ev.rssiStart, ev.rssiEnd
			haveResult = true
		case EventCompleted:
			if ev.completionCode != 0 {
				return 0, nil, NewPhyError(ev.completionCode)
			}
			goto done
		default:
			sequenceViolation("unexpected event during Rssi")
		}
	}
done:
	if !haveResult {
		sequenceViolation("Rssi completed without a sample report")
	}

	p.scratch.lockForResult()
	return startTime, &RssiResult{buf: p.scratch, start: start, end: end}, nil
}

// Rx issues a single-shot receive and assembles its result. A nil
// RecvResult with a nil error means silence for the whole listen window.
func (p *DectPhy) Rx() (*RecvResult, error) {
	p.beginOperation()
	defer p.endOperation()

	p.scratch.clear()

	params := RxParams{
		StartTime: 0,
		Handle:    rxHandle,
		Carrier:   rxCarrier,
		NetworkID: rxNetworkID,
		Duration:  rxDuration,
	}
	if err := p.modem.Rx(params); err != nil {
		return nil, ModemError{err}
	}

	var pccOk bool
	var pccSeen, pdcSeen bool
	var pccTime uint64
	var pccLen int
	var pccErrKind PccErrorKind
	var pdcLen int
	var pdcOutOfSpace bool
	var pdcErrSeen bool

	for {
		ev := p.events.receive()
		switch ev.kind {
		case EventPcc:
			if pccSeen {
				sequenceViolation("duplicate Pcc event")
			}
			pccSeen, pccOk, pccTime, pccLen = true, true, ev.time, ev.pccLen
		case EventPccError:
			if pccSeen {
				sequenceViolation("duplicate Pcc event")
			}
			pccSeen, pccOk, pccErrKind = true, false, ev.pccErr
		case EventPdc:
			if pdcSeen {
				sequenceViolation("duplicate Pdc event")
			}
			pdcSeen, pdcLen, pdcOutOfSpace = true, ev.pdcLen, ev.pdcOutOfSpace
		case EventPdcError:
			if pdcSeen {
				sequenceViolation("duplicate Pdc event")
			}
			pdcSeen, pdcErrSeen = true, true
		case EventCompleted:
			if ev.completionCode != 0 {
				return nil, NewPhyError(ev.completionCode)
			}
			goto done
		default:
			sequenceViolation("unexpected event during Rx")
		}
	}
done:
	if !pccSeen && !pdcSeen {
		return nil, nil
	}
	if !pccSeen {
		sequenceViolation("PDC received without a preceding PCC")
	}

	p.scratch.lockForResult()
	result := &RecvResult{buf: p.scratch, pccOk: pccOk, pccErr: pccErrKind, pccLen: pccLen, pccTime: pccTime}
	switch {
	case !pccOk:
		// Pcc() and Pdc() both report pccErr.
	case !pdcSeen:
		result.pdcState = pdcNotReceived
	case pdcErrSeen:
		result.pdcState = pdcCrcError
	case pdcOutOfSpace:
		result.pdcState = pdcOutOfSpaceState
	default:
		result.pdcState = pdcOk
		result.pdcLen = pdcLen
	}
	return result, nil
}

// Tx transmits pcc/pdc at startTime (0 meaning "as soon as feasible") on
// carrier, scrambled with networkID. pcc must be 5 or 10 bytes; networkID
// must be nonzero, or this returns a UsageError without contacting the
// modem.
func (p *DectPhy) Tx(startTime uint64, carrier uint16, networkID uint32, pcc, pdc []byte) error {
	p.beginOperation()
	defer p.endOperation()

	switch len(pcc) {
	case 5, 10:
	default:
		panic("dect phy: pcc must be 5 or 10 bytes")
	}
	if networkID == 0 {
		return UsageError{"network id must be nonzero"}
	}

	params := TxParams{
		StartTime: startTime,
		Handle:    txHandle,
		NetworkID: networkID,
		Carrier:   carrier,
		Pcc:       pcc,
		Pdc:       pdc,
	}
	if err := p.modem.Tx(params); err != nil {
		return ModemError{err}
	}

	ev := p.events.receive()
	if ev.kind != EventCompleted {
		sequenceViolation("expected Completed event")
	}
	if ev.completionCode != 0 {
		return NewPhyError(ev.completionCode)
	}
	return nil
}

// handleEvent is the registered event sink: the Go equivalent of the
// interrupt-context callback. It copies PCC/PDC/RSSI payload bytes into
// the scratch buffer, asserts the modem's own bring-up completion codes
// are success, and enqueues exactly one dectEvent per call. It never
// blocks and never allocates beyond the unavoidable byte copy.
func (p *DectPhy) handleEvent(raw RawEvent) {
	qe := dectEvent{kind: raw.Kind, time: raw.Time}

	switch raw.Kind {
	case EventInit, EventConfigure, EventActivate, EventTimeGet:
		if raw.ErrCode != 0 {
			sequenceViolation("modem reported a nonzero error code for a bring-up event")
		}
	case EventLatencyGet:
		qe.latency = raw.Latency
	case EventCompleted:
		qe.completionCode = raw.CompletionCode
	case EventPcc:
		var headerLen int
		switch raw.PccPhyType {
		case 0:
			headerLen = 5
		case 1:
			headerLen = 10
		default:
			qe.kind = EventPccError
			qe.pccErr = PccErrorUnexpectedEventDetails
			p.events.push(qe)
			return
		}
		if len(raw.PccHeader) != headerLen {
			sequenceViolation("PCC header length does not match its phy_type")
		}
		if _, ok := p.scratch.tryAppend(raw.PccHeader); !ok {
			sequenceViolation("scratch buffer was not empty for a PCC header")
		}
		qe.pccLen = headerLen
	case EventPccError:
		qe.pccErr = raw.PccError
	case EventPdc:
		if _, ok := p.scratch.tryAppend(raw.PdcData); ok {
			qe.pdcLen = len(raw.PdcData)
		} else {
			qe.pdcOutOfSpace = true
		}
	case EventPdcError:
		// no additional fields
	case EventRssi:
		if start, ok := p.scratch.tryAppend(raw.RssiSamples); ok {
			qe.rssiStart, qe.rssiEnd, qe.rssiOk = start, start+len(raw.RssiSamples), true
		}
	default:
		sequenceViolation("event had no known handler")
	}

	p.events.push(qe)
}
