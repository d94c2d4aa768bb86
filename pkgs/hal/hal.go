// Package hal is the hardware boundary of the track driver: digital
// output lines for the H-bridge control pins, raw analog reads for the
// current sense input, and the bit clock engine that pushes transfer
// words onto the rails. The core stays hardware agnostic behind these
// interfaces; targets plug in real implementations.
package hal

// Line is a single digital output such as the brake, PWM or power
// enable pin of the driver stage.
type Line interface {
	// Set drives the line high or low.
	Set(high bool) error

	// Get reads back the last driven level.
	Get() bool
}

// ADC is a raw analog input. Readings are 16-bit left-aligned codes
// regardless of the converter's native resolution.
type ADC interface {
	ReadRaw() (uint16, error)
}

// BitClockEngine consumes 32-bit transfer words and shifts them out
// MSB-first at the fixed DCC bit rate (~58 µs per one, ~100 µs per
// zero). It must never be left without data; the caller keeps it fed
// with at least the idle sequence.
type BitClockEngine interface {
	// Load atomically replaces the transmit sequence. The engine must
	// never emit a mix of old and new words: implementations either
	// swap the sequence between words or block the consumer for the
	// duration of the swap.
	Load(words []uint32) error

	Close() error
}
