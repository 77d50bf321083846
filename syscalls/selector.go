// Package syscalls implements the syscall hint processor: the VM callback
// that intercepts protocol hints, charges gas, reads a typed request
// struct out of VM memory, runs the syscall's business logic against
// state/context, and writes a typed response struct back.
package syscalls

// Selector is the closed set of syscalls a compiled class's hints may
// reference. It is deliberately closed (as opposed to an open string) so
// that HintProcessor.dispatch switches over a fixed set of cases; a value
// outside the set has no gas-cost entry and is rejected with
// ErrUnknownSyscallSelector.
type Selector int

const (
	SelectorCallContract Selector = iota
	SelectorLibraryCall
	SelectorLibraryCallL1Handler
	SelectorDeploy
	SelectorStorageRead
	SelectorStorageWrite
	SelectorEmitEvent
	SelectorSendMessageToL1
	SelectorGetExecutionInfo
	SelectorKeccak
	SelectorSecp256k1New
	SelectorSecp256k1Add
	SelectorSecp256k1Mul
	SelectorSecp256k1GetPointFromX
	SelectorSecp256k1GetXy
	SelectorReplaceClass
	SelectorGetBlockHash
)

// String implements fmt.Stringer, and doubles as the gas-cost table lookup
// key (see gascost.Table.Cost).
func (s Selector) String() string {
	switch s {
	case SelectorCallContract:
		return "call_contract"
	case SelectorLibraryCall:
		return "library_call"
	case SelectorLibraryCallL1Handler:
		return "library_call_l1_handler"
	case SelectorDeploy:
		return "deploy"
	case SelectorStorageRead:
		return "storage_read"
	case SelectorStorageWrite:
		return "storage_write"
	case SelectorEmitEvent:
		return "emit_event"
	case SelectorSendMessageToL1:
		return "send_message_to_l1"
	case SelectorGetExecutionInfo:
		return "get_execution_info"
	case SelectorKeccak:
		return "keccak"
	case SelectorSecp256k1New:
		return "secp256k1_new"
	case SelectorSecp256k1Add:
		return "secp256k1_add"
	case SelectorSecp256k1Mul:
		return "secp256k1_mul"
	case SelectorSecp256k1GetPointFromX:
		return "secp256k1_get_point_from_x"
	case SelectorSecp256k1GetXy:
		return "secp256k1_get_xy"
	case SelectorReplaceClass:
		return "replace_class"
	case SelectorGetBlockHash:
		return "get_block_hash"
	default:
		return "unknown"
	}
}
