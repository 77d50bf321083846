// Package mock provides reusable test doubles for blockifier.State and
// blockifier.VM, plus a fluent CallInfo assertion helper, so that
// entrypoint, syscalls, host and scenario tests don't each hand-roll
// their own fake collaborators.
package mock

import (
	"fmt"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// State is an in-memory blockifier.State double, built with NewState; the
// zero value's maps are nil, so its setters panic on it. Use the setters
// to seed deployed classes and storage before exercising a Dispatcher or
// Host against it.
type State struct {
	classHashes map[[32]byte]felt.ClassHash
	classes     map[[32]byte]blockifier.CompiledClass
	storage     map[[32]byte]felt.Felt
	blockHashes map[uint64]felt.Felt
}

// NewState builds an empty State double.
func NewState() *State {
	return &State{
		classHashes: map[[32]byte]felt.ClassHash{},
		classes:     map[[32]byte]blockifier.CompiledClass{},
		storage:     map[[32]byte]felt.Felt{},
		blockHashes: map[uint64]felt.Felt{},
	}
}

// Deploy binds addr to classHash and registers class as its compiled class.
func (s *State) Deploy(addr felt.ContractAddress, classHash felt.ClassHash, class blockifier.CompiledClass) *State {
	s.classHashes[felt.Felt(addr).Bytes32()] = classHash
	s.classes[felt.Felt(classHash).Bytes32()] = class
	return s
}

// SetStorage seeds a single storage slot.
func (s *State) SetStorage(addr felt.ContractAddress, key felt.StorageKey, value felt.Felt) *State {
	s.storage[storageKey(addr, key)] = value
	return s
}

// SetBlockHash seeds the hash GetBlockHash returns for blockNumber.
func (s *State) SetBlockHash(blockNumber uint64, hash felt.Felt) *State {
	s.blockHashes[blockNumber] = hash
	return s
}

func storageKey(addr felt.ContractAddress, key felt.StorageKey) [32]byte {
	a := felt.Felt(addr).Bytes32()
	k := felt.Felt(key).Bytes32()
	var out [32]byte
	for i := range out {
		out[i] = a[i] ^ k[i]
	}
	return out
}

func (s *State) GetClassHashAt(addr felt.ContractAddress) (felt.ClassHash, error) {
	return s.classHashes[felt.Felt(addr).Bytes32()], nil
}

func (s *State) GetCompiledContractClass(classHash felt.ClassHash) (blockifier.CompiledClass, error) {
	class, ok := s.classes[felt.Felt(classHash).Bytes32()]
	if !ok {
		return nil, fmt.Errorf("mock: no class registered for %s", classHash.Hex())
	}
	return class, nil
}

func (s *State) GetStorageAt(addr felt.ContractAddress, key felt.StorageKey) (felt.Felt, error) {
	return s.storage[storageKey(addr, key)], nil
}

func (s *State) SetStorageAt(addr felt.ContractAddress, key felt.StorageKey, value felt.Felt) error {
	s.storage[storageKey(addr, key)] = value
	return nil
}

func (s *State) SetClassHashAt(addr felt.ContractAddress, classHash felt.ClassHash) error {
	s.classHashes[felt.Felt(addr).Bytes32()] = classHash
	return nil
}

func (s *State) GetBlockHash(blockNumber uint64) (felt.Felt, error) {
	return s.blockHashes[blockNumber], nil
}
