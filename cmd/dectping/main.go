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
	carrier    = kingpin.Flag("carrier", "DECT carrier index").Default("1665").Uint16()
	networkID  = kingpin.Flag("network-id", "32-bit network ID used to scramble the transmission").Required().Uint32()
	payload    = kingpin.Flag("payload", "Bytes to send as the PDC payload").Default("ping").String()
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

	pcc := []byte{0, 0, 0, 0, 0}
	if err := phy.Tx(0, *carrier, *networkID, pcc, []byte(*payload)); err != nil {
		fmt.Printf("Tx error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("sent")
}
