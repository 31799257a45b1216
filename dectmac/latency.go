package dectmac

// LatencyInfo mirrors the fields of the modem's latency report that the
// driver asserts against a known-good firmware version at Init time. Only
// the fields the known table actually distinguishes are carried; the real
// ABI reports more detail nobody here consumes yet.
type LatencyInfo struct {
	RadioModeTransition [3][3]uint32
	ScheduledOperationTransition [3]uint32
	ScheduledOperationStartup    [3]uint32

	ReceiveIdleToActive      uint32
	ReceiveActiveToIdleRssi  uint32
	ReceiveActiveToIdleRx    uint32
	ReceiveActiveToIdleRxRssi uint32
	ReceiveStopToRfOff       uint32

	TransmitIdleToActive uint32
	TransmitActiveToIdle uint32

	StackInitialization   uint32
	StackDeinitialization uint32
	StackConfiguration    uint32
	StackActivation       uint32
	StackDeactivation     uint32
}

// knownLatencyInfo is the byte-for-byte latency table reported by nRF
// DECT NR+ firmware 1.1.0. A mismatch at Init is fatal: the driver has no
// way to know whether a changed table implies changed timing elsewhere it
// silently relies on, so it refuses to proceed on unknown firmware.
var knownLatencyInfo = LatencyInfo{
	RadioModeTransition: [3][3]uint32{
		{6912, 6912, 34905},
		{45273, 6912, 21427},
		{45273, 41472, 21427},
	},
	ScheduledOperationTransition: [3]uint32{25920, 25920, 26956},
	ScheduledOperationStartup:    [3]uint32{0, 87782, 42854},

	ReceiveIdleToActive:       22118,
	ReceiveActiveToIdleRssi:   13132,
	ReceiveActiveToIdleRx:     12441,
	ReceiveActiveToIdleRxRssi: 16588,
	ReceiveStopToRfOff:        14169,

	TransmitIdleToActive: 29030,
	TransmitActiveToIdle: 7603,

	StackInitialization:   2764800,
	StackDeinitialization: 62208,
	StackConfiguration:    7119360,
	StackActivation:       2972160,
	StackDeactivation:     58752,
}

// latencyIsExpected reports whether reported matches the known firmware
// table byte-for-byte.
func latencyIsExpected(reported LatencyInfo) bool {
	return reported == knownLatencyInfo
}
