package dectmac

// PccErrorKind distinguishes the two ways a PCC reception can fail.
type PccErrorKind int

const (
	PccErrorCrc PccErrorKind = iota
	PccErrorUnexpectedEventDetails
)

// EventKind discriminates the tagged union RawEvent carries, standing in
// for the C ABI's event-id field.
type EventKind int

const (
	EventInit EventKind = iota
	EventConfigure
	EventActivate
	EventLatencyGet
	EventTimeGet
	EventCompleted
	EventPcc
	EventPccError
	EventPdc
	EventPdcError
	EventRssi
)

// RawEvent is what a Modem implementation delivers through the handler
// registered via SetEventHandler — the Go equivalent of the single opaque
// argument the real callback receives. Only the fields relevant to Kind
// are populated; this mirrors the C union's "the `id` field says which of
// the others you may read" contract without needing unsafe casts.
type RawEvent struct {
	Kind EventKind
	Time uint64

	// Valid for Init, Configure, Activate, TimeGet: the modem's own report
	// of success for that operation. The driver asserts this is 0
	// (success); a nonzero value here is unrecoverable, since it means the
	// modem's own bring-up failed in a way the handler cannot repair.
	ErrCode uint16

	// Valid for Completed.
	CompletionCode uint16

	// Valid for LatencyGet.
	Latency LatencyInfo

	// Valid for Pcc: PhyType selects header length (0 -> 5 bytes, 1 -> 10
	// bytes); Header carries exactly that many bytes.
	PccPhyType uint8
	PccHeader  []byte

	// Valid for PccError.
	PccError PccErrorKind

	// Valid for Pdc.
	PdcData []byte

	// Valid for Rssi: the samples collected in this report.
	RssiSamples []byte
}

// Modem is the Go-native seam standing in for the modem's C ABI: the
// synchronous request calls the driver issues, plus a single registered
// handler through which every asynchronous event is later delivered.
// transport.NewSerialModem is the one concrete binding this module ships;
// a production board-support layer would implement this interface over
// cgo bindings to the vendor library instead.
type Modem interface {
	// SetEventHandler registers the callback invoked for every event.
	// Implementations must call it from whatever context events actually
	// arrive in (interrupt context on real hardware); the driver's handler
	// does no blocking and no allocation beyond what copying bytes
	// requires, matching the ISR constraints of the hardware this models.
	SetEventHandler(handler func(RawEvent))

	Init() error
	LatencyGet() error
	Configure(ConfigParams) error
	Activate(RadioMode) error
	TimeGet() error
	Rx(RxParams) error
	Tx(TxParams) error
	Rssi(RssiParams) error
}
