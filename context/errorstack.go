package context

import (
	"strings"

	"github.com/NethermindEth/blockifier-go/felt"
)

// ErrorFrame names the contract address a failure propagated through, and
// the error raised at that frame.
type ErrorFrame struct {
	Address felt.ContractAddress
	Err     error
}

// ErrorStack accumulates one ErrorFrame per call frame a failure
// propagates through, append-only, from the frame that failed outward to
// the transaction root. Every frame pushes onto it as the error
// propagates, but only the outermost frame renders it into text: the trace
// string for a tree of depth n would otherwise be recomputed n times over
// as the error bubbles up, growing quadratically. Rendering once, at the
// root, is the only point where the recorded frames become a diagnostic
// string.
type ErrorStack struct {
	frames []ErrorFrame
}

// Push records one more frame on the way out.
func (s *ErrorStack) Push(addr felt.ContractAddress, err error) {
	s.frames = append(s.frames, ErrorFrame{Address: addr, Err: err})
}

// Frames returns the recorded frames, innermost first.
func (s *ErrorStack) Frames() []ErrorFrame {
	return s.frames
}

// Render joins the recorded frames into a single human-readable trace,
// innermost failure first. Callers should invoke this once, at the
// outermost frame that observes the failure, not at every intermediate
// frame it passes through.
func (s *ErrorStack) Render() string {
	var b strings.Builder
	for i, f := range s.frames {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Error in contract ")
		b.WriteString(f.Address.Hex())
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
	}
	return b.String()
}
