package dcc

import "fmt"

// DefaultPreambleBits is the minimum preamble length of RP 9.2. The
// packer may emit more ones than this to reach a word boundary.
const DefaultPreambleBits = 14

const wordBits = 32

const (
	minInstructionLen = 2
	maxInstructionLen = 5
)

// XorSum is the DCC error detection byte: XOR over all packet bytes.
func XorSum(b []byte) byte {
	var x byte
	for _, v := range b {
		x ^= v
	}
	return x
}

// InstructionLengthError reports an instruction outside the 2..5 byte
// range accepted by the packer. It indicates an encoder bug, not bad
// user input.
type InstructionLengthError int

func (e InstructionLengthError) Error() string {
	return fmt.Sprintf("instruction of %d bytes is outside the packable range [2,5]", int(e))
}

// Pack frames an instruction per RP 9.2 and returns whole 32-bit
// transfer words, packed MSB first:
//
//	1…1 0 AAAAAAAA 0 … 0 EEEEEEEE 1
//
// that is: the preamble, every packet byte behind a 0 start bit, the
// appended XOR byte and a final 1 stop bit. The total is rounded up
// to a word boundary by extending the preamble with leading ones.
func Pack(instruction []byte, preambleBits int) ([]uint32, error) {
	if len(instruction) < minInstructionLen || len(instruction) > maxInstructionLen {
		return nil, InstructionLengthError(len(instruction))
	}
	if preambleBits < DefaultPreambleBits {
		preambleBits = DefaultPreambleBits
	}

	packet := append(append(make([]byte, 0, len(instruction)+1), instruction...), XorSum(instruction))

	bits := preambleBits + len(packet)*9 + 1
	padding := (wordBits - bits%wordBits) % wordBits

	var w wordWriter
	for i := 0; i < padding+preambleBits; i++ {
		w.writeBit(1)
	}
	for _, b := range packet {
		w.writeBit(0)
		w.writeByte(b)
	}
	w.writeBit(1)
	return w.words, nil
}

// wordWriter collects bits MSB-first into 32-bit transfer words.
type wordWriter struct {
	words []uint32
	nbits int
}

func (w *wordWriter) writeBit(bit uint32) {
	if w.nbits%wordBits == 0 {
		w.words = append(w.words, 0)
	}
	w.words[len(w.words)-1] |= (bit & 1) << uint(wordBits-1-w.nbits%wordBits)
	w.nbits++
}

func (w *wordWriter) writeByte(b byte) {
	for i := 7; i >= 0; i-- {
		w.writeBit(uint32(b >> i))
	}
}

// Instruction bytes behind the pre-rendered packets below. Kept
// exported for callers that reframe them with a longer preamble.
var (
	IdleInstruction      = []byte{0xFF, 0x00}
	EmergencyInstruction = []byte{0x00, 0x01}
)

// Pre-rendered filler packets, two transfer words each: the 14-bit
// preamble grows by 22 padding ones to fill exactly 64 bits.

// idlePacket: preamble 0 11111111 0 00000000 0 11111111 1
var idlePacket = [2]uint32{
	0b11111111111111111111111111111111,
	0b11110111111110000000000111111111,
}

// emergencyPacket: preamble 0 00000000 0 00000001 0 00000001 1
var emergencyPacket = [2]uint32{
	0b11111111111111111111111111111111,
	0b11110000000000000000010000000011,
}

// IdleWords returns the pre-rendered idle packet transmitted whenever
// no locomotive command is pending, so the track is never silent.
func IdleWords() []uint32 {
	return []uint32{idlePacket[0], idlePacket[1]}
}

// EmergencyWords returns the pre-rendered broadcast emergency stop
// packet.
func EmergencyWords() []uint32 {
	return []uint32{emergencyPacket[0], emergencyPacket[1]}
}
