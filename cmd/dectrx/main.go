package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hophop-go/dectmac/dectmac"
	"github.com/hophop-go/dectmac/transport"
)

var (
	serialPath = kingpin.Flag("device", "Path to serial port device").Required().String()
	baudRate   = kingpin.Flag("baud", "Serial port baudrate").Default("115200").Uint()
	count      = kingpin.Flag("count", "Number of single-shot receives to run, 0 for unlimited").Default("0").Uint()
)

func main() {
	kingpin.Version("0.1")
	kingpin.Parse()

	modem, err := transport.NewSerialModem(*serialPath, *baudRate)
	if err != nil {
		fmt.Printf("Error opening serial link: %v\n", err)
		os.Exit(1)
	}
	defer modem.Close()

	phy := dectmac.NewDectPhy(modem)
	if err := phy.Init(); err != nil {
		fmt.Printf("Error bringing up PHY: %v\n", err)
		os.Exit(1)
	}

	for i := uint(0); *count == 0 || i < *count; i++ {
		result, err := phy.Rx()
		if err != nil {
			fmt.Printf("Rx error: %v\n", err)
			continue
		}
		if result == nil {
			fmt.Println("silence")
			continue
		}
		report(result)
		result.Close()
	}
}

func report(result *dectmac.RecvResult) {
	pcc, err := result.Pcc()
	if err != nil {
		fmt.Printf("pcc error: %v\n", err)
		return
	}
	fmt.Printf("pcc: % x\n", pcc)

	pdc, err := result.Pdc()
	if err != nil {
		fmt.Printf("pdc: %v\n", err)
		return
	}
	fmt.Printf("pdc: % x\n", pdc)
}
