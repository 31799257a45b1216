package dectmac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModem is a synchronous stand-in for a real Modem: every method
// invokes the registered handler itself before returning, the same way
// the teacher's TestLink fakes an io.ReadWriteCloser to dry-test the NPI
// link manager without real hardware.
type fakeModem struct {
	handler func(RawEvent)

	onInit     func(h func(RawEvent)) error
	onLatency  func(h func(RawEvent)) error
	onConfigure func(h func(RawEvent), params ConfigParams) error
	onActivate func(h func(RawEvent), mode RadioMode) error
	onTimeGet  func(h func(RawEvent)) error
	onRx       func(h func(RawEvent), params RxParams) error
	onTx       func(h func(RawEvent), params TxParams) error
	onRssi     func(h func(RawEvent), params RssiParams) error
}

func (f *fakeModem) SetEventHandler(h func(RawEvent)) { f.handler = h }

func (f *fakeModem) Init() error        { return f.onInit(f.handler) }
func (f *fakeModem) LatencyGet() error  { return f.onLatency(f.handler) }
func (f *fakeModem) Configure(p ConfigParams) error { return f.onConfigure(f.handler, p) }
func (f *fakeModem) Activate(m RadioMode) error     { return f.onActivate(f.handler, m) }
func (f *fakeModem) TimeGet() error     { return f.onTimeGet(f.handler) }
func (f *fakeModem) Rx(p RxParams) error     { return f.onRx(f.handler, p) }
func (f *fakeModem) Tx(p TxParams) error     { return f.onTx(f.handler, p) }
func (f *fakeModem) Rssi(p RssiParams) error { return f.onRssi(f.handler, p) }

// newHappyModem returns a fakeModem whose bring-up sequence always
// succeeds with the known-good latency table, for tests that only care
// about post-Init behavior.
func newHappyModem() *fakeModem {
	return &fakeModem{
		onInit: func(h func(RawEvent)) error {
			h(RawEvent{Kind: EventInit})
			return nil
		},
		onLatency: func(h func(RawEvent)) error {
			h(RawEvent{Kind: EventLatencyGet, Latency: knownLatencyInfo})
			return nil
		},
		onConfigure: func(h func(RawEvent), _ ConfigParams) error {
			h(RawEvent{Kind: EventConfigure})
			return nil
		},
		onActivate: func(h func(RawEvent), _ RadioMode) error {
			h(RawEvent{Kind: EventActivate})
			return nil
		},
	}
}

func initializedPhy(t *testing.T) (*DectPhy, *fakeModem) {
	t.Helper()
	modem := newHappyModem()
	phy := NewDectPhy(modem)
	require.NoError(t, phy.Init())
	return phy, modem
}

func TestInitSequence(t *testing.T) {
	_, _ = initializedPhy(t)
}

func TestInitRejectsLatencyMismatch(t *testing.T) {
	modem := newHappyModem()
	modem.onLatency = func(h func(RawEvent)) error {
		bad := knownLatencyInfo
		bad.TransmitActiveToIdle++
		h(RawEvent{Kind: EventLatencyGet, Latency: bad})
		return nil
	}
	phy := NewDectPhy(modem)

	assert.Panics(t, func() { _ = phy.Init() })
}

func TestInitCalledTwicePanics(t *testing.T) {
	phy, _ := initializedPhy(t)
	assert.Panics(t, func() { _ = phy.Init() })
}

func TestTimeGet(t *testing.T) {
	phy, modem := initializedPhy(t)
	modem.onTimeGet = func(h func(RawEvent)) error {
		h(RawEvent{Kind: EventTimeGet, Time: 123456})
		return nil
	}

	got, err := phy.TimeGet()
	require.NoError(t, err)
	assert.EqualValues(t, 123456, got)
}

// The TestReceiveAssembly* tests cover scenario 6: feeding Pcc/Pdc/Completed in
// order yields a full result; Pcc/Completed only yields PdcNotReceived;
// PccError/Completed yields a Pcc-level CRC error.
func TestReceiveAssemblyFullResult(t *testing.T) {
	phy, modem := initializedPhy(t)
	pccHeader := []byte{1, 2, 3, 4, 5}
	pdcPayload := make([]byte, 33)
	for i := range pdcPayload {
		pdcPayload[i] = byte(i)
	}

	modem.onRx = func(h func(RawEvent), _ RxParams) error {
		h(RawEvent{Kind: EventPcc, Time: 1000, PccPhyType: 0, PccHeader: pccHeader})
		h(RawEvent{Kind: EventPdc, PdcData: pdcPayload})
		h(RawEvent{Kind: EventCompleted, CompletionCode: 0})
		return nil
	}

	result, err := phy.Rx()
	require.NoError(t, err)
	require.NotNil(t, result)
	defer result.Close()

	pccTime, err := result.PccTime()
	require.NoError(t, err)
	assert.EqualValues(t, 1000, pccTime)

	pcc, err := result.Pcc()
	require.NoError(t, err)
	assert.Equal(t, pccHeader, pcc)

	pdc, err := result.Pdc()
	require.NoError(t, err)
	assert.Equal(t, pdcPayload, pdc)
}

func TestReceiveAssemblyPdcNotReceived(t *testing.T) {
	phy, modem := initializedPhy(t)
	modem.onRx = func(h func(RawEvent), _ RxParams) error {
		h(RawEvent{Kind: EventPcc, Time: 1000, PccPhyType: 0, PccHeader: []byte{1, 2, 3, 4, 5}})
		h(RawEvent{Kind: EventCompleted, CompletionCode: 0})
		return nil
	}

	result, err := phy.Rx()
	require.NoError(t, err)
	require.NotNil(t, result)
	defer result.Close()

	_, err = result.Pdc()
	assert.ErrorIs(t, err, PdcNotReceived{})
}

func TestReceiveAssemblyPccCrcError(t *testing.T) {
	phy, modem := initializedPhy(t)
	modem.onRx = func(h func(RawEvent), _ RxParams) error {
		h(RawEvent{Kind: EventPccError, PccError: PccErrorCrc})
		h(RawEvent{Kind: EventCompleted, CompletionCode: 0})
		return nil
	}

	result, err := phy.Rx()
	require.NoError(t, err)
	require.NotNil(t, result)
	defer result.Close()

	_, err = result.Pcc()
	assert.ErrorIs(t, err, PccCrcError{})
}

func TestReceiveAssemblySilence(t *testing.T) {
	phy, modem := initializedPhy(t)
	modem.onRx = func(h func(RawEvent), _ RxParams) error {
		h(RawEvent{Kind: EventCompleted, CompletionCode: 0})
		return nil
	}

	result, err := phy.Rx()
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReceivePdcWithoutPccPanics(t *testing.T) {
	phy, modem := initializedPhy(t)
	modem.onRx = func(h func(RawEvent), _ RxParams) error {
		h(RawEvent{Kind: EventPdc, PdcData: []byte{1}})
		h(RawEvent{Kind: EventCompleted, CompletionCode: 0})
		return nil
	}

	assert.Panics(t, func() { _, _ = phy.Rx() })
}

// TestTxUsageError covers scenario 5: a zero network ID is rejected
// without ever calling the modem.
func TestTxUsageError(t *testing.T) {
	phy, modem := initializedPhy(t)
	called := false
	modem.onTx = func(h func(RawEvent), _ TxParams) error {
		called = true
		h(RawEvent{Kind: EventCompleted})
		return nil
	}

	err := phy.Tx(0, 1665, 0, make([]byte, 5), nil)
	assert.Error(t, err)
	assert.IsType(t, UsageError{}, err)
	assert.False(t, called, "modem must not be contacted on a usage error")
}

func TestTxRejectsBadPccLength(t *testing.T) {
	phy, modem := initializedPhy(t)
	modem.onTx = func(h func(RawEvent), _ TxParams) error {
		h(RawEvent{Kind: EventCompleted})
		return nil
	}

	assert.Panics(t, func() { _ = phy.Tx(0, 1665, 1, make([]byte, 4), nil) })
}

func TestTxSuccess(t *testing.T) {
	phy, modem := initializedPhy(t)
	modem.onTx = func(h func(RawEvent), _ TxParams) error {
		h(RawEvent{Kind: EventCompleted, CompletionCode: 0})
		return nil
	}

	err := phy.Tx(0, 1665, 0x12345678, make([]byte, 5), []byte{1, 2, 3})
	assert.NoError(t, err)
}

func TestTxPhyError(t *testing.T) {
	phy, modem := initializedPhy(t)
	modem.onTx = func(h func(RawEvent), _ TxParams) error {
		h(RawEvent{Kind: EventCompleted, CompletionCode: 7})
		return nil
	}

	err := phy.Tx(0, 1665, 0x12345678, make([]byte, 5), nil)
	require.Error(t, err)
	var phyErr PhyError
	require.ErrorAs(t, err, &phyErr)
	assert.EqualValues(t, 7, phyErr.Code())
}

func TestRssiScan(t *testing.T) {
	phy, modem := initializedPhy(t)
	samples := []byte{10, 20, 30, 40}
	modem.onRssi = func(h func(RawEvent), _ RssiParams) error {
		h(RawEvent{Kind: EventRssi, Time: 555, RssiSamples: samples})
		h(RawEvent{Kind: EventCompleted, CompletionCode: 0})
		return nil
	}

	start, result, err := phy.Rssi(1670)
	require.NoError(t, err)
	require.NotNil(t, result)
	defer result.Close()
	assert.EqualValues(t, 555, start)
	assert.Equal(t, samples, result.Data())
}

func TestOperationWhileNotActivePanics(t *testing.T) {
	modem := newHappyModem()
	phy := NewDectPhy(modem)
	assert.Panics(t, func() { _, _ = phy.TimeGet() })
}
