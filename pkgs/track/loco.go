package track

import (
	"github.com/sirupsen/logrus"

	"github.com/keskad/picolo/pkgs/dcc"
)

// Locomotive is one addressed command channel on the track. Handles
// come from Driver.Attach and stay valid for the process lifetime;
// all mutation goes through Drive and SetFunction so the buffer
// rebuild step always sees a consistent state.
type Locomotive struct {
	driver *Driver

	address     uint16
	longAddress bool
	mode        dcc.SpeedMode

	dir       dcc.Direction
	step      int
	functions dcc.FunctionGroups
	dirty     bool
}

func (l *Locomotive) Address() uint16 {
	return l.address
}

// Mode returns the speed-step mode the locomotive was attached with.
func (l *Locomotive) Mode() dcc.SpeedMode {
	return l.mode
}

// Drive sets direction and speed step. The change reaches the rails
// on the next control cycle.
func (l *Locomotive) Drive(dir dcc.Direction, step int) {
	l.driver.mu.Lock()
	defer l.driver.mu.Unlock()
	l.dir, l.step = dir, step
	l.dirty = true
	logrus.Debugf("loco %d: drive dir=%d step=%d", l.address, dir, step)
}

// Speed returns the commanded direction and speed step.
func (l *Locomotive) Speed() (dcc.Direction, int) {
	l.driver.mu.Lock()
	defer l.driver.mu.Unlock()
	return l.dir, l.step
}

// SetFunction switches F0..F12 on or off. Numbers outside that range
// are ignored.
func (l *Locomotive) SetFunction(fn int, on bool) {
	l.driver.mu.Lock()
	defer l.driver.mu.Unlock()
	if l.functions.Set(fn, on) {
		l.dirty = true
		logrus.Debugf("loco %d: F%d=%v", l.address, fn, on)
	}
}

// Function reports whether a function is on.
func (l *Locomotive) Function(fn int) bool {
	l.driver.mu.Lock()
	defer l.driver.mu.Unlock()
	return l.functions.Get(fn)
}

// packets encodes the full retransmission set of this locomotive: one
// speed packet and one packet per function group. Function state goes
// out whole every rebuild rather than as deltas, so decoders that
// missed a packet converge. Caller holds the driver lock.
func (l *Locomotive) packets(preambleBits int) ([]uint32, error) {
	instruction, err := dcc.SpeedInstruction(l.address, l.longAddress, l.mode, l.dir, l.step)
	if err != nil {
		return nil, err
	}
	words, err := dcc.Pack(instruction, preambleBits)
	if err != nil {
		return nil, err
	}
	for _, group := range l.functions {
		groupWords, err := dcc.Pack(dcc.FunctionInstruction(l.address, l.longAddress, group), preambleBits)
		if err != nil {
			return nil, err
		}
		words = append(words, groupWords...)
	}
	return words, nil
}
