// Package context holds the bookkeeping shared across an entire call tree:
// the step/recursion budget (ResourceEnvelope), the monotonic event/message
// ordinal allocator (EffectLedger), the accumulated failure trace
// (ErrorStack), and the per-transaction ExecutionContext that bundles them.
package context

import (
	"fmt"

	blockifier "github.com/NethermindEth/blockifier-go"
)

// ResourceEnvelope tracks the Cairo step budget and the call-recursion
// depth for one transaction's entire call tree. A single envelope is
// shared by every frame: steps consumed by a deeply nested call draw down
// the same budget the root frame started with, and EnterCall/release pairs
// bracket every frame so the depth counter never drifts out of balance
// even when a frame returns early via an error.
type ResourceEnvelope struct {
	maxSteps  int
	usedSteps int

	depth    int
	maxDepth int
}

// NewResourceEnvelope builds an envelope with the given step and recursion
// bounds.
func NewResourceEnvelope(maxSteps, maxDepth int) *ResourceEnvelope {
	return &ResourceEnvelope{maxSteps: maxSteps, maxDepth: maxDepth}
}

// ConsumeStep implements blockifier.StepTracker: it charges one step
// against the shared budget, reporting false once exhausted so the VM can
// halt the running frame.
func (r *ResourceEnvelope) ConsumeStep() bool {
	if r.usedSteps >= r.maxSteps {
		return false
	}
	r.usedSteps++
	return true
}

// SubtractSteps bulk-charges n steps against the shared budget, used for
// the Keccak syscall's per-block cost, which is billed in steps rather than
// one VM cycle at a time. It returns ErrOutOfSteps without partially charging if n would
// overdraw the budget.
func (r *ResourceEnvelope) SubtractSteps(n int) error {
	if r.usedSteps+n > r.maxSteps {
		return fmt.Errorf("%w: %d steps remaining, %d requested", blockifier.ErrOutOfSteps, r.StepsRemaining(), n)
	}
	r.usedSteps += n
	return nil
}

// StepsRemaining reports how much of the shared step budget is left.
func (r *ResourceEnvelope) StepsRemaining() int {
	return r.maxSteps - r.usedSteps
}

// UsedSteps reports how many steps have been consumed so far.
func (r *ResourceEnvelope) UsedSteps() int {
	return r.usedSteps
}

// EnterCall brackets entry into one more call frame. It increments the
// recursion depth and returns a release func the caller must invoke
// exactly once, by defer, regardless of how the frame exits; this keeps
// the depth counter balanced even along error-return paths, unlike an
// increment-then-possibly-skip-the-decrement sequence written out by hand
// at every call site.
func (r *ResourceEnvelope) EnterCall() (release func(), err error) {
	if r.depth >= r.maxDepth {
		return nil, fmt.Errorf("%w: depth %d", blockifier.ErrRecursionDepthExceeded, r.depth)
	}
	r.depth++
	return func() { r.depth-- }, nil
}

// Depth reports the current recursion depth.
func (r *ResourceEnvelope) Depth() int {
	return r.depth
}
