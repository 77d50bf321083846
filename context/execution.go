package context

import (
	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// BlockContext carries the block-level parameters every entry point call
// within a transaction observes (gas price, block number and timestamp,
// and the step caps a transaction's validate/invoke phases run under). It
// is read-only for the lifetime of an ExecutionContext.
type BlockContext struct {
	BlockNumber    uint64
	BlockTimestamp uint64
	ChainID        string
	GasPrice       uint64

	// ValidateMaxNSteps bounds an account's __validate__ entry point,
	// independent of the step cap its invocation runs under.
	ValidateMaxNSteps uint64

	// InvokeTxMaxNSteps bounds a transaction's invocation phase before
	// MaxInvokeSteps even considers the fee the transaction is willing to
	// pay for steps.
	InvokeTxMaxNSteps uint64

	// VMResourceFeeCost maps a resource name (NStepsResource, builtins,
	// ...) to the fee-weight a unit of that resource costs, used to
	// convert a transaction's max_fee into a step budget. Absence of the
	// "n_steps" entry when a transaction requests a fee-derived budget is
	// a configuration bug, not a per-transaction error.
	VMResourceFeeCost map[string]uint64
}

// AccountTransactionContext carries the transaction-level parameters a
// syscall's GetExecutionInfo response exposes: the sender, its nonce, the
// fee/tip the transaction is willing to pay, and its signature.
type AccountTransactionContext struct {
	TransactionHash   felt.Felt
	Version           uint64
	SenderAddress     felt.ContractAddress
	MaxFee            uint64
	Nonce             felt.Felt
	Signature         []felt.Felt
}

// executionMode distinguishes the two phases blockifier runs an entry
// point under: validating an account's `__validate__` against a tighter
// step cap, and invoking the transaction's actual entry points (execute,
// fee transfer, L1 handlers) against the full per-block cap.
type executionMode int

const (
	modeValidate executionMode = iota
	modeInvoke
)

// ExecutionContext bundles everything shared across one transaction's
// entire call tree: the block/account parameters, the shared resource
// envelope, the effect ordinal ledger, and the accumulated error stack. A
// CallDispatcher thread passes the same *ExecutionContext down through
// every recursive call it makes.
type ExecutionContext struct {
	Block   BlockContext
	Account AccountTransactionContext

	Resources *ResourceEnvelope
	Ledger    *EffectLedger
	Errors    *ErrorStack

	mode executionMode
}

// NewValidate builds an ExecutionContext for running an account's
// `__validate__` entry point, which gets its own (tighter) step cap
// (block.ValidateMaxNSteps) and a fresh resource envelope separate from
// the invocation that follows it.
func NewValidate(block BlockContext, account AccountTransactionContext) *ExecutionContext {
	return &ExecutionContext{
		Block:     block,
		Account:   account,
		Resources: NewResourceEnvelope(int(block.ValidateMaxNSteps), blockifier.MaxRecursionDepth),
		Ledger:    &EffectLedger{},
		Errors:    &ErrorStack{},
		mode:      modeValidate,
	}
}

// NewInvoke builds an ExecutionContext for running a transaction's actual
// entry points, capped at MaxInvokeSteps(block, account).
func NewInvoke(block BlockContext, account AccountTransactionContext) *ExecutionContext {
	return &ExecutionContext{
		Block:     block,
		Account:   account,
		Resources: NewResourceEnvelope(maxInvokeSteps(block, account), blockifier.MaxRecursionDepth),
		Ledger:    &EffectLedger{},
		Errors:    &ErrorStack{},
		mode:      modeInvoke,
	}
}

// maxInvokeSteps converts a transaction's willingness to pay (max_fee) into
// a step budget: a zero max_fee (fee charging disabled) returns
// min(MaxStepsPerTx, block.InvokeTxMaxNSteps); otherwise max_fee is
// converted to a gas budget via block.GasPrice, then to a step budget via
// the "n_steps" entry of block.VMResourceFeeCost, and the result is
// clamped to both MaxStepsPerTx and block.InvokeTxMaxNSteps.
func maxInvokeSteps(block BlockContext, account AccountTransactionContext) int {
	invokeCap := int(block.InvokeTxMaxNSteps)

	if account.MaxFee == 0 {
		return min(blockifier.MaxStepsPerTx, invokeCap)
	}

	gasPerStep, ok := block.VMResourceFeeCost[blockifier.NStepsResource]
	if !ok {
		panic("context: block.VMResourceFeeCost has no \"n_steps\" entry")
	}

	maxGas := account.MaxFee / block.GasPrice
	maxSteps := int(maxGas / gasPerStep)

	return min(maxSteps, blockifier.MaxStepsPerTx, invokeCap)
}

// MaxInvokeSteps reports the step cap this context was built with.
func (c *ExecutionContext) MaxInvokeSteps() int {
	return c.Resources.maxSteps
}

// SubtractSteps bulk-charges n steps against the shared resource envelope.
func (c *ExecutionContext) SubtractSteps(n int) error {
	return c.Resources.SubtractSteps(n)
}

// EnterCall brackets entry into one more recursive call frame; see
// ResourceEnvelope.EnterCall.
func (c *ExecutionContext) EnterCall() (release func(), err error) {
	return c.Resources.EnterCall()
}

// PushError records one more frame of a failure on its way out of the call
// tree.
func (c *ExecutionContext) PushError(addr felt.ContractAddress, err error) {
	c.Errors.Push(addr, err)
}

// ErrorTrace renders the accumulated error stack. Call this once, at the
// outermost frame that observes a failure (typically where the
// transaction-level caller gives up on the call), not at every
// intermediate frame the error passes through.
func (c *ExecutionContext) ErrorTrace() string {
	return c.Errors.Render()
}

// IsValidate reports whether this context is running account validation,
// as opposed to transaction invocation.
func (c *ExecutionContext) IsValidate() bool {
	return c.mode == modeValidate
}
