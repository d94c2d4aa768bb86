package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/keskad/picolo/pkgs/dcc"
)

// Scratch tool: builds a speed packet for a locomotive and dumps the
// framed transfer words, so the bitstream can be eyeballed against a
// logic analyzer capture.

func main() {
	addr := flag.Uint("addr", 3, "locomotive address")
	long := flag.Bool("long", false, "extended addressing")
	speed := flag.Int("speed", 0, "speed step (-1 for emergency stop)")
	forward := flag.Bool("forward", true, "direction")
	steps := flag.Uint("steps", 128, "speed steps: 28 or 128")
	preamble := flag.Int("preamble", dcc.DefaultPreambleBits, "preamble length in bits")
	flag.Parse()

	dir := dcc.Reverse
	if *forward {
		dir = dcc.Forward
	}

	instruction, err := dcc.SpeedInstruction(uint16(*addr), *long, dcc.SpeedMode(*steps), dir, *speed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("instruction:")
	for _, b := range instruction {
		fmt.Printf(" %02X", b)
	}
	fmt.Printf("\nchecksum: %02X\n", dcc.XorSum(instruction))

	words, err := dcc.Pack(instruction, *preamble)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	for i, w := range words {
		fmt.Printf("word[%d] = %032b (0x%08X)\n", i, w, w)
	}

	fmt.Println("\nidle:")
	for i, w := range dcc.IdleWords() {
		fmt.Printf("word[%d] = %032b (0x%08X)\n", i, w, w)
	}
	fmt.Println("\nemergency stop:")
	for i, w := range dcc.EmergencyWords() {
		fmt.Printf("word[%d] = %032b (0x%08X)\n", i, w, w)
	}
}
