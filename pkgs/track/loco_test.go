package track

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keskad/picolo/pkgs/dcc"
)

func TestDriveMarksDirty(t *testing.T) {
	driver, _ := newTestDriver(nil)
	loco, err := driver.Attach(3, false, dcc.Steps128)
	assert.NoError(t, err)

	// consume the attach-time dirty state
	_, err = driver.buffer.Tick(&driver.registry)
	assert.NoError(t, err)
	assert.False(t, driver.registry.dirty())

	loco.Drive(dcc.Reverse, 10)
	assert.True(t, driver.registry.dirty())

	dir, step := loco.Speed()
	assert.Equal(t, dcc.Reverse, dir)
	assert.Equal(t, 10, step)
}

func TestSetFunctionDirtySemantics(t *testing.T) {
	driver, _ := newTestDriver(nil)
	loco, err := driver.Attach(3, false, dcc.Steps128)
	assert.NoError(t, err)

	_, err = driver.buffer.Tick(&driver.registry)
	assert.NoError(t, err)

	loco.SetFunction(3, true)
	assert.True(t, loco.Function(3))
	assert.True(t, driver.registry.dirty())

	_, err = driver.buffer.Tick(&driver.registry)
	assert.NoError(t, err)

	// out of range numbers are dropped without dirtying anything
	loco.SetFunction(13, true)
	assert.False(t, loco.Function(13))
	assert.False(t, driver.registry.dirty())
}

func TestAttachDefaults(t *testing.T) {
	driver, _ := newTestDriver(nil)
	loco, err := driver.Attach(42, false, dcc.Steps28)
	assert.NoError(t, err)

	dir, step := loco.Speed()
	assert.Equal(t, dcc.Forward, dir, "a fresh locomotive faces forward")
	assert.Equal(t, 0, step, "a fresh locomotive stands still")
	assert.Equal(t, uint16(42), loco.Address())
	for fn := 0; fn <= dcc.MaxFunction; fn++ {
		assert.False(t, loco.Function(fn))
	}
}
