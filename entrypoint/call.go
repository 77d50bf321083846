// Package entrypoint implements recursive entry-point call dispatch: given
// a CallDescriptor naming a contract, a class hash resolution strategy and
// calldata, Dispatcher.Execute resolves the target class, loads it,
// bounds-checks recursion, invokes the VM against the shared step budget,
// and folds the result
// (plus every nested call it made) into a CallInfo tree.
package entrypoint

import (
	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// CallDescriptor names one entry point call: which class to run it
// against, under which address's storage, on whose behalf, with what
// calldata and gas.
type CallDescriptor struct {
	// ClassHash pins the call to a specific declared class, bypassing
	// StorageAddress's deployed class. Unset (zero) for an ordinary call,
	// which resolves the class from State.GetClassHashAt(StorageAddress).
	ClassHash felt.ClassHash

	// CodeAddress records the address whose code the call runs, when it
	// differs from StorageAddress. Dispatcher.Execute does not read it: the
	// class to run comes from ClassHash, or else from the class deployed at
	// StorageAddress.
	CodeAddress felt.ContractAddress

	// StorageAddress is the address whose storage this call reads and
	// writes.
	StorageAddress felt.ContractAddress

	// CallerAddress is the address that issued this call; the zero
	// address for the transaction's root call.
	CallerAddress felt.ContractAddress

	EntryPointType blockifier.EntryPointType
	Selector       felt.EntryPointSelector
	Calldata       []felt.Felt

	CallType CallType

	InitialGas uint64
}

// CallType distinguishes an ordinary call (code and storage both resolve
// to StorageAddress) from a library call (code resolves via ClassHash,
// storage still resolves to the caller's StorageAddress).
type CallType = blockifier.CallType

const (
	CallTypeCall     = blockifier.CallTypeCall
	CallTypeDelegate = blockifier.CallTypeDelegate
)
