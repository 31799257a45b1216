package dectmac

// ConfigParams is passed to Modem.Configure during Init. The driver
// always uses one fixed set of values (band group 0, 4 HARQ receive
// processes, 1 s expiry); see DESIGN.md for why these remain hard-coded
// rather than parameterized.
type ConfigParams struct {
	BandGroupIndex     uint8
	HarqRxProcessCount uint8
	HarqRxExpiryTimeUs uint32
}

var defaultConfigParams = ConfigParams{
	BandGroupIndex:     0,
	HarqRxProcessCount: 4,
	HarqRxExpiryTimeUs: 1_000_000,
}

// RadioMode selects the modem's power/latency tradeoff at Activate.
type RadioMode uint8

const (
	RadioModeLowLatency RadioMode = iota
	RadioModeHighAccuracy
)

// RxParams carries the fixed single-shot receive parameters Rx issues.
type RxParams struct {
	StartTime uint64
	Handle    uint32
	NetworkID uint32
	Carrier   uint16
	Duration  uint32
}

// TxParams carries the parameters Tx issues.
type TxParams struct {
	StartTime uint64
	Handle    uint32
	NetworkID uint32
	Carrier   uint16
	Pcc       []byte
	Pdc       []byte
}

// RssiParams carries the fixed single-run RSSI scan parameters Rssi
// issues: 48 subslots duration, one reporting interval of 24 slots.
type RssiParams struct {
	StartTime          uint64
	Handle             uint32
	Carrier            uint16
	Duration           uint16
	ReportingInterval  uint8
}

const (
	rxHandle          = 54321
	rxCarrier         = 1665
	rxNetworkID       = 0x12345678
	rxDuration        = 70_000_000 // ~1s at 69.12MHz
	rssiHandle        = 1234567
	rssiDuration      = 48 // subslots; 1 full report
	rssiReportingInterval = 24 // slots
	txHandle          = 2468
)
