package track

import (
	"github.com/sirupsen/logrus"

	"github.com/keskad/picolo/pkgs/dcc"
)

// emergencyRepeat is how many times the broadcast stop packet is
// queued in one cycle, so a decoder that misses single packets still
// hears it.
const emergencyRepeat = 5

// Buffer holds the transfer words of one full transmission cycle. It
// re-encodes only when a command changed and hands out the previous
// sequence unchanged otherwise, so steady-state cycles carry no
// encoding cost.
type Buffer struct {
	preambleBits int
	emergency    bool
	words        []uint32
}

func NewBuffer(preambleBits int) *Buffer {
	return &Buffer{preambleBits: preambleBits}
}

// EmergencyStop arms the one-shot broadcast stop override.
func (b *Buffer) EmergencyStop() {
	b.emergency = true
}

// EmergencyArmed reports whether the override is still pending.
func (b *Buffer) EmergencyArmed() bool {
	return b.emergency
}

// Rebuild encodes the retransmission set of every registered
// locomotive, or the idle packet when the registry is empty so the
// track is never silent.
func (b *Buffer) Rebuild(reg *Registry) ([]uint32, error) {
	if reg.Len() == 0 {
		return dcc.IdleWords(), nil
	}
	words := make([]uint32, 0, cap(b.words))
	for _, loco := range reg.locos {
		locoWords, err := loco.packets(b.preambleBits)
		if err != nil {
			return nil, err
		}
		words = append(words, locoWords...)
	}
	return words, nil
}

// Tick returns the words to transmit this cycle. An armed emergency
// override wins over everything, is consumed, and replaces the held
// sequence, so it keeps going out until a new command arrives. With
// no override the buffer rebuilds only when a command is dirty.
func (b *Buffer) Tick(reg *Registry) ([]uint32, error) {
	if b.emergency {
		b.emergency = false
		words := make([]uint32, 0, emergencyRepeat*2)
		for i := 0; i < emergencyRepeat; i++ {
			words = append(words, dcc.EmergencyWords()...)
		}
		b.words = words
		logrus.Warn("broadcast emergency stop queued")
		return b.words, nil
	}

	if b.words == nil || reg.dirty() {
		words, err := b.Rebuild(reg)
		if err != nil {
			return nil, err
		}
		b.words = words
		reg.clearDirty()
		logrus.Debugf("track buffer rebuilt: %d transfer words", len(words))
	}
	return b.words, nil
}

// reset drops the held sequence and any pending override.
func (b *Buffer) reset() {
	b.emergency = false
	b.words = nil
}
