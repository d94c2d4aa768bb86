package dcc

import "errors"

// SpeedMode selects the speed-step encoding used on the wire.
type SpeedMode uint8

const (
	Steps14  SpeedMode = 14
	Steps28  SpeedMode = 28
	Steps128 SpeedMode = 128
)

// Direction of travel as placed into the speed instruction byte.
type Direction byte

const (
	Reverse Direction = 0
	Forward Direction = 1
)

// EmergencyStep is the pseudo speed step requesting an immediate stop
// of the addressed decoder.
const EmergencyStep = -1

// ErrUnsupportedSpeedMode is returned for the 14-step mode, which is a
// placeholder with no encoder behind it.
var ErrUnsupportedSpeedMode = errors.New("14 speed steps are not supported")

func (m SpeedMode) Valid() bool {
	return m == Steps28 || m == Steps128
}

// Encode128 builds the 128-step data byte DSSSSSSS: D is the
// direction, SSSSSSS is 0 for stop, 1 for emergency stop and 2..127
// for steps 1..126. Steps below 126 are shifted past the two reserved
// codes, then masked to 0x7E.
func Encode128(dir Direction, step int) byte {
	var code int
	switch {
	case step == EmergencyStep:
		code = 1
	case step == 0:
		code = 0
	default:
		code = step
		if code < 126 {
			code += 2
		}
		code &= 0x7E
	}
	return byte(code) | byte(dir)<<7
}

// Encode28 builds the complete 28-step instruction byte 01DCSSSS.
// C is the intermediate half step, carried in the lowest bit of
// step+3 per RP 9.2.
func Encode28(dir Direction, step int) byte {
	if step > 28 {
		step = 28
	}
	var cssss byte
	if step > 0 {
		temp := step + 3
		c := byte(temp&0b1) << 4
		ssss := byte(temp >> 1)
		cssss = c | ssss
	}
	return 0b01000000 | byte(dir)<<5 | cssss
}
