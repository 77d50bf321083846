package entrypoint

import (
	"fmt"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// ExecuteConstructor runs classHash's constructor against storageAddress,
// or synthesizes an empty-constructor frame when the class declares none.
// It is the deploy-time counterpart to Dispatcher.Execute: Deploy always
// calls this immediately after binding storageAddress to classHash, before
// the deployed contract can be reached by any other call.
func (d *Dispatcher) ExecuteConstructor(classHash felt.ClassHash, storageAddress, callerAddress felt.ContractAddress, calldata []felt.Felt, initialGas uint64) (*CallInfo, error) {
	class, err := d.State.GetCompiledContractClass(classHash)
	if err != nil {
		wrapped := &blockifier.EntryPointExecutionError{Address: storageAddress, Err: err}
		d.Ctx.PushError(storageAddress, wrapped)
		return nil, wrapped
	}

	selector, ok := class.ConstructorSelector()
	if !ok {
		return d.HandleEmptyConstructor(classHash, storageAddress, callerAddress, calldata)
	}

	return d.Execute(CallDescriptor{
		ClassHash:      classHash,
		StorageAddress: storageAddress,
		CallerAddress:  callerAddress,
		EntryPointType: blockifier.EntryPointTypeConstructor,
		Selector:       selector,
		Calldata:       calldata,
		CallType:       CallTypeCall,
		InitialGas:     initialGas,
	})
}

// HandleEmptyConstructor synthesizes the CallInfo for a class that
// declares no constructor. A deploy against such a class must pass no
// constructor calldata; passing any is rejected, since there is no
// constructor to receive it.
func (d *Dispatcher) HandleEmptyConstructor(classHash felt.ClassHash, storageAddress, callerAddress felt.ContractAddress, calldata []felt.Felt) (*CallInfo, error) {
	if len(calldata) != 0 {
		err := fmt.Errorf("%w: class %s has no constructor but %d calldata words were given", blockifier.ErrInvalidArgument, classHash.Hex(), len(calldata))
		d.Ctx.PushError(storageAddress, err)
		return nil, err
	}

	frame := NewCallInfo(CallDescriptor{
		ClassHash:      classHash,
		StorageAddress: storageAddress,
		CallerAddress:  callerAddress,
		EntryPointType: blockifier.EntryPointTypeConstructor,
		Selector:       felt.SelectorFromName(blockifier.ConstructorEntryPointName),
		CallType:       CallTypeCall,
	})
	frame.Execution.Retdata = nil
	frame.Execution.Failed = false
	return frame, nil
}
