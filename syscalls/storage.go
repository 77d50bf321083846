package syscalls

import blockifier "github.com/NethermindEth/blockifier-go"

// storageRead is StorageRead's business logic: it reads a slot from the
// frame's own storage address, records the key as accessed and the value
// as read (CallInfo.StorageReadValues, in read order), and responds with
// the value.
func (h *HintProcessor) storageRead(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readStorageReadRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	value, err := h.State.GetStorageAt(h.Call.StorageAddress, req.Key)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	h.Frame.RecordStorageKey(req.Key)
	h.Frame.StorageReadValues = append(h.Frame.StorageReadValues, value)

	return []blockifier.Word{blockifier.FeltWord(value)}, next, nil
}

// storageWrite is StorageWrite's business logic: it writes a slot in the
// frame's own storage address and records the key as accessed. It has no
// response payload beyond the envelope's gas counter.
func (h *HintProcessor) storageWrite(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readStorageWriteRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	if err := h.State.SetStorageAt(h.Call.StorageAddress, req.Key, req.Value); err != nil {
		return nil, blockifier.Pointer{}, err
	}
	h.Frame.RecordStorageKey(req.Key)

	return nil, next, nil
}
