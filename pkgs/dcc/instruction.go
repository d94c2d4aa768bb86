package dcc

import "fmt"

// AddressBytes builds the address prefix of an instruction: 7-bit
// addresses go out as a single byte, 14-bit addresses as two bytes
// 11AAAAAA AAAAAAAA.
func AddressBytes(addr uint16, long bool) []byte {
	if long {
		return []byte{0xC0 | byte(addr>>8), byte(addr)}
	}
	return []byte{byte(addr)}
}

// SpeedInstruction assembles the instruction bytes for one speed and
// direction command. 128-step commands use the advanced-operation
// prefix 001GGGGG with GGGGG=11111 followed by the data byte;
// 28-step commands carry everything in a single byte.
func SpeedInstruction(addr uint16, long bool, mode SpeedMode, dir Direction, step int) ([]byte, error) {
	instruction := AddressBytes(addr, long)
	switch mode {
	case Steps128:
		instruction = append(instruction, 0b00111111, Encode128(dir, step))
	case Steps28:
		instruction = append(instruction, Encode28(dir, step))
	case Steps14:
		return nil, ErrUnsupportedSpeedMode
	default:
		return nil, fmt.Errorf("cannot encode speed: unknown speed mode %d", mode)
	}
	return instruction, nil
}

// FunctionInstruction assembles the instruction bytes retransmitting
// one function group byte as produced by FunctionGroups.
func FunctionInstruction(addr uint16, long bool, group byte) []byte {
	return append(AddressBytes(addr, long), group)
}
