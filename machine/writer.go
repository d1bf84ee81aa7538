package machine

import "io"

// Writer is an io.Writer that enciphers everything written through it
// before passing it on. A write containing characters outside the machine's
// alphabet fails as a whole; no partial output is produced and no rotor
// state mutates.
type Writer struct {
	out     io.Writer
	machine *Machine
}

// NewWriter creates a Writer that processes written data with m and writes
// the result to out.
func NewWriter(out io.Writer, m *Machine) *Writer {
	return &Writer{out: out, machine: m}
}

func (w *Writer) Write(p []byte) (int, error) {
	processed, err := w.machine.Process(string(p))
	if err != nil {
		return 0, err
	}

	n, err := io.WriteString(w.out, processed)
	if err != nil {
		return n, err
	}

	return len(p), nil
}
