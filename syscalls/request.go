package syscalls

import (
	"fmt"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// readFeltArray reads length felts from a read-only segment starting at
// start.
func readFeltArray(vm blockifier.VM, start blockifier.Pointer, length int) ([]felt.Felt, error) {
	out := make([]felt.Felt, length)
	for i := 0; i < length; i++ {
		f, err := vm.ReadFelt(start.Add(i))
		if err != nil {
			return nil, fmt.Errorf("reading array element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// writeSegment allocates a read-only segment holding values and returns its
// start pointer, for responses that include a Span<felt252> (CallContract,
// LibraryCall, Deploy, and the revert of a failed inner call).
func writeSegment(vm blockifier.VM, values []felt.Felt) (blockifier.Pointer, error) {
	words := make([]blockifier.Word, len(values))
	for i, f := range values {
		words[i] = blockifier.FeltWord(f)
	}
	return vm.AllocateSegment(words)
}

// readSpan reads a `Span<felt252>` encoded as a length felt followed by a
// segment start pointer, returning the span's contents and the pointer
// just past the two-word header.
func readSpan(vm blockifier.VM, ptr blockifier.Pointer) ([]felt.Felt, blockifier.Pointer, error) {
	lengthFelt, err := vm.ReadFelt(ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	length := int(lengthFelt.Uint64())
	start, err := vm.ReadPointer(ptr.Add(1))
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	values, err := readFeltArray(vm, start, length)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	return values, ptr.Add(2), nil
}

// StorageReadRequest is StorageRead's argument block: the storage key.
type StorageReadRequest struct {
	Key felt.StorageKey
}

func readStorageReadRequest(vm blockifier.VM, ptr blockifier.Pointer) (StorageReadRequest, blockifier.Pointer, error) {
	f, err := vm.ReadFelt(ptr)
	if err != nil {
		return StorageReadRequest{}, blockifier.Pointer{}, err
	}
	return StorageReadRequest{Key: felt.StorageKey(f)}, ptr.Add(1), nil
}

// StorageWriteRequest is StorageWrite's argument block: key and value.
type StorageWriteRequest struct {
	Key   felt.StorageKey
	Value felt.Felt
}

func readStorageWriteRequest(vm blockifier.VM, ptr blockifier.Pointer) (StorageWriteRequest, blockifier.Pointer, error) {
	k, err := vm.ReadFelt(ptr)
	if err != nil {
		return StorageWriteRequest{}, blockifier.Pointer{}, err
	}
	v, err := vm.ReadFelt(ptr.Add(1))
	if err != nil {
		return StorageWriteRequest{}, blockifier.Pointer{}, err
	}
	return StorageWriteRequest{Key: felt.StorageKey(k), Value: v}, ptr.Add(2), nil
}

// EmitEventRequest is EmitEvent's argument block: two Span<felt252>, keys
// then data.
type EmitEventRequest struct {
	Keys []felt.Felt
	Data []felt.Felt
}

func readEmitEventRequest(vm blockifier.VM, ptr blockifier.Pointer) (EmitEventRequest, blockifier.Pointer, error) {
	keys, next, err := readSpan(vm, ptr)
	if err != nil {
		return EmitEventRequest{}, blockifier.Pointer{}, err
	}
	data, next2, err := readSpan(vm, next)
	if err != nil {
		return EmitEventRequest{}, blockifier.Pointer{}, err
	}
	return EmitEventRequest{Keys: keys, Data: data}, next2, nil
}

// SendMessageToL1Request is SendMessageToL1's argument block: the L1
// recipient address and the message payload span.
type SendMessageToL1Request struct {
	ToAddress felt.Felt
	Payload   []felt.Felt
}

func readSendMessageToL1Request(vm blockifier.VM, ptr blockifier.Pointer) (SendMessageToL1Request, blockifier.Pointer, error) {
	to, err := vm.ReadFelt(ptr)
	if err != nil {
		return SendMessageToL1Request{}, blockifier.Pointer{}, err
	}
	payload, next, err := readSpan(vm, ptr.Add(1))
	if err != nil {
		return SendMessageToL1Request{}, blockifier.Pointer{}, err
	}
	return SendMessageToL1Request{ToAddress: to, Payload: payload}, next, nil
}

// CallContractRequest is CallContract's and LibraryCall's shared argument
// block shape: a target (contract address, or class hash for a library
// call), an entry-point selector, and a calldata span.
type CallContractRequest struct {
	Target   felt.Felt
	Selector felt.EntryPointSelector
	Calldata []felt.Felt
}

func readCallContractRequest(vm blockifier.VM, ptr blockifier.Pointer) (CallContractRequest, blockifier.Pointer, error) {
	target, err := vm.ReadFelt(ptr)
	if err != nil {
		return CallContractRequest{}, blockifier.Pointer{}, err
	}
	selector, err := vm.ReadFelt(ptr.Add(1))
	if err != nil {
		return CallContractRequest{}, blockifier.Pointer{}, err
	}
	calldata, next, err := readSpan(vm, ptr.Add(2))
	if err != nil {
		return CallContractRequest{}, blockifier.Pointer{}, err
	}
	return CallContractRequest{Target: target, Selector: felt.EntryPointSelector(selector), Calldata: calldata}, next, nil
}

// DeployRequest is Deploy's argument block: the class to instantiate, a
// salt, constructor calldata, and whether to derive the new address from
// the zero address rather than the deployer.
type DeployRequest struct {
	ClassHash           felt.ClassHash
	ContractAddressSalt felt.Felt
	ConstructorCalldata []felt.Felt
	DeployFromZero      bool
}

func readDeployRequest(vm blockifier.VM, ptr blockifier.Pointer) (DeployRequest, blockifier.Pointer, error) {
	ch, err := vm.ReadFelt(ptr)
	if err != nil {
		return DeployRequest{}, blockifier.Pointer{}, err
	}
	salt, err := vm.ReadFelt(ptr.Add(1))
	if err != nil {
		return DeployRequest{}, blockifier.Pointer{}, err
	}
	calldata, next, err := readSpan(vm, ptr.Add(2))
	if err != nil {
		return DeployRequest{}, blockifier.Pointer{}, err
	}
	fromZero, err := vm.ReadFelt(next)
	if err != nil {
		return DeployRequest{}, blockifier.Pointer{}, err
	}
	return DeployRequest{
		ClassHash:           felt.ClassHash(ch),
		ContractAddressSalt: salt,
		ConstructorCalldata: calldata,
		DeployFromZero:      !fromZero.IsZero(),
	}, next.Add(1), nil
}

// ReplaceClassRequest is ReplaceClass's argument block: the new class hash.
type ReplaceClassRequest struct {
	ClassHash felt.ClassHash
}

func readReplaceClassRequest(vm blockifier.VM, ptr blockifier.Pointer) (ReplaceClassRequest, blockifier.Pointer, error) {
	f, err := vm.ReadFelt(ptr)
	if err != nil {
		return ReplaceClassRequest{}, blockifier.Pointer{}, err
	}
	return ReplaceClassRequest{ClassHash: felt.ClassHash(f)}, ptr.Add(1), nil
}

// GetBlockHashRequest is GetBlockHash's argument block: the queried block
// number.
type GetBlockHashRequest struct {
	BlockNumber uint64
}

func readGetBlockHashRequest(vm blockifier.VM, ptr blockifier.Pointer) (GetBlockHashRequest, blockifier.Pointer, error) {
	f, err := vm.ReadFelt(ptr)
	if err != nil {
		return GetBlockHashRequest{}, blockifier.Pointer{}, err
	}
	return GetBlockHashRequest{BlockNumber: f.Uint64()}, ptr.Add(1), nil
}

// KeccakRequest is Keccak's argument block: a span of input words.
type KeccakRequest struct {
	Input []felt.Felt
}

func readKeccakRequest(vm blockifier.VM, ptr blockifier.Pointer) (KeccakRequest, blockifier.Pointer, error) {
	input, next, err := readSpan(vm, ptr)
	if err != nil {
		return KeccakRequest{}, blockifier.Pointer{}, err
	}
	return KeccakRequest{Input: input}, next, nil
}
