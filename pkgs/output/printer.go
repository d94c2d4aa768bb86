package output

import (
	"bytes"
	"fmt"
)

type Printer interface {
	Printf(format string, a ...any) (n int, err error)
}

type ConsolePrinter struct{}

func (c ConsolePrinter) Printf(format string, a ...any) (n int, err error) {
	return fmt.Printf(format, a...)
}

// BufferPrinter collects output in memory instead of writing to the
// console. Used by tests.
type BufferPrinter struct {
	Buf bytes.Buffer
}

func (b *BufferPrinter) Printf(format string, a ...any) (n int, err error) {
	return fmt.Fprintf(&b.Buf, format, a...)
}
