// Package host wires together a State, a VM, a gas cost table and the
// syscall hint processor factory into a single entry point a
// transaction-processing pipeline calls: ExecuteTransactionPhase. It is
// also where the transaction-level safety net lives — a timeout and a
// panic recovery boundary around the whole call tree, so a VM bug or a
// runaway recursive fixture cannot wedge or crash the caller.
package host

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	blockifier "github.com/NethermindEth/blockifier-go"
	ctxpkg "github.com/NethermindEth/blockifier-go/context"
	"github.com/NethermindEth/blockifier-go/entrypoint"
	"github.com/NethermindEth/blockifier-go/gascost"
	"github.com/NethermindEth/blockifier-go/syscalls"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("host")

// ErrExecutionPanicked is returned when a call tree's execution goroutine
// panics; the panic is recovered and reported as an ordinary error rather
// than crashing the caller.
var ErrExecutionPanicked = errors.New("host: execution panicked")

// ErrExecutionTimedOut is returned when a call tree's execution exceeds
// Host's configured timeout.
var ErrExecutionTimedOut = errors.New("host: execution timed out")

// Host orchestrates one transaction's worth of entry-point execution: it
// owns the State and VM collaborators and the gas cost table, and builds a
// fresh Dispatcher (sharing one ExecutionContext) for every phase a
// transaction runs through.
type Host struct {
	State blockifier.State
	VM    blockifier.VM
	Costs *gascost.Table

	// Timeout bounds how long a single ExecuteTransactionPhase call may
	// run; zero disables the bound.
	Timeout time.Duration
}

// New builds a Host over state and vm with the default gas cost table and
// no execution timeout.
func New(state blockifier.State, vm blockifier.VM) *Host {
	return &Host{State: state, VM: vm, Costs: gascost.Default()}
}

// ExecuteTransactionPhase runs call to completion against ctx's shared
// resource envelope, returning the resulting CallInfo. It is the single
// entry point every phase of a transaction (account validation, the
// transaction's own entry point, fee transfer, an L1 handler) goes
// through.
//
// Execution runs on its own goroutine so that a timeout can abandon a
// wedged call without blocking the caller, and a panic anywhere in the
// call tree (a VM bug, a bug in this module) is recovered and reported as
// ErrExecutionPanicked instead of crashing the process — mirroring how a
// transaction-processing pipeline must never let one bad transaction take
// down the node running it.
func (h *Host) ExecuteTransactionPhase(call entrypoint.CallDescriptor, ctx *ctxpkg.ExecutionContext) (*entrypoint.CallInfo, error) {
	dispatcher := entrypoint.NewDispatcher(h.State, h.VM, ctx, syscalls.NewHintProcessor(h.Costs))

	deadline := context.Background()
	var cancel context.CancelFunc
	if h.Timeout > 0 {
		deadline, cancel = context.WithTimeout(deadline, h.Timeout)
		defer cancel()
	}

	type result struct {
		frame *entrypoint.CallInfo
		err   error
	}

	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("entry point execution panicked", "error", r, "stack", string(debug.Stack()))
				done <- result{err: fmt.Errorf("%w: %v", ErrExecutionPanicked, r)}
			}
		}()

		frame, err := dispatcher.Execute(call)
		done <- result{frame: frame, err: err}
	}()

	select {
	case r := <-done:
		return r.frame, r.err
	case <-deadline.Done():
		return nil, ErrExecutionTimedOut
	}
}
