package dcc

// MaxFunction is the highest function number reachable through the
// three basic function-group instructions (F0..F12).
const MaxFunction = 12

// FunctionGroups holds the per-locomotive function state as three
// wire-ready instruction bytes: 100DDDDD (FL,F4..F1), 1011DDDD
// (F8..F5), 1010DDDD (F12..F9).
type FunctionGroups [3]byte

// NewFunctionGroups returns the groups with every function off, each
// byte already carrying its instruction prefix.
func NewFunctionGroups() FunctionGroups {
	return FunctionGroups{0b10000000, 0b10110000, 0b10100000}
}

// GroupIndex maps a function number to its function group.
func GroupIndex(fn int) int {
	switch {
	case fn < 5:
		return 0
	case fn < 9:
		return 1
	default:
		return 2
	}
}

// FunctionShift returns the bit position of fn inside its group byte.
// F0 (the headlight, FL) sits at bit 4, apart from F1..F4.
func FunctionShift(fn int) int {
	if fn == 0 {
		return 4
	}
	return (fn - 1) % 4
}

// GroupPrefix returns the instruction prefix of the group serving fn.
func GroupPrefix(fn int) byte {
	prefix := byte(0b10000000)
	switch {
	case fn >= 5 && fn <= 8:
		prefix |= 0b110000
	case fn >= 9 && fn <= 12:
		prefix |= 0b100000
	}
	return prefix
}

// Set turns fn on or off, keeping the group prefix bits intact.
// Function numbers outside 0..12 are ignored; the return value
// reports whether the state was touched.
func (g *FunctionGroups) Set(fn int, on bool) bool {
	if fn < 0 || fn > MaxFunction {
		return false
	}
	group := GroupIndex(fn)
	bit := byte(1) << FunctionShift(fn)
	if on {
		g[group] |= bit | GroupPrefix(fn)
	} else {
		g[group] &= ^bit | GroupPrefix(fn)
	}
	return true
}

// Get reports whether fn is on. Out-of-range numbers read as off.
func (g *FunctionGroups) Get(fn int) bool {
	if fn < 0 || fn > MaxFunction {
		return false
	}
	return g[GroupIndex(fn)]&(byte(1)<<FunctionShift(fn)) != 0
}
