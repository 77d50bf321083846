// Command entrypointcli is a debug tool for running a single scenario
// fixture or a directory of them through the entry-point execution core:
// point it at a file or a directory and it reports pass/fail per fixture.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/NethermindEth/blockifier-go/host"
	"github.com/NethermindEth/blockifier-go/scenario"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/urfave/cli/v2"
)

var log = logger.GetOrCreate("entrypointcli")

// memoryState is a minimal in-memory blockifier.State, enough to run a
// scenario fixture standalone without wiring a real storage backend. The
// CLI builds a fresh, empty memoryState for every fixture, and the
// scenario format has no section for deploying classes or seeding storage,
// so every address reads as undeployed (zero class hash) and no class is
// registered. Richer
// fixtures should construct a Host against their own State implementation
// and call scenario.Run directly instead of going through this CLI.
type memoryState struct {
	classHashes map[[32]byte]felt.ClassHash
	classes     map[[32]byte]blockifier.CompiledClass
	storage     map[[32]byte]felt.Felt
}

func newMemoryState() *memoryState {
	return &memoryState{
		classHashes: map[[32]byte]felt.ClassHash{},
		classes:     map[[32]byte]blockifier.CompiledClass{},
		storage:     map[[32]byte]felt.Felt{},
	}
}

func (s *memoryState) GetClassHashAt(addr felt.ContractAddress) (felt.ClassHash, error) {
	return s.classHashes[felt.Felt(addr).Bytes32()], nil
}

func (s *memoryState) GetCompiledContractClass(classHash felt.ClassHash) (blockifier.CompiledClass, error) {
	class, ok := s.classes[felt.Felt(classHash).Bytes32()]
	if !ok {
		return nil, fmt.Errorf("entrypointcli: no class registered for %s", classHash.Hex())
	}
	return class, nil
}

func (s *memoryState) GetStorageAt(addr felt.ContractAddress, key felt.StorageKey) (felt.Felt, error) {
	return s.storage[storageCacheKey(addr, key)], nil
}

func (s *memoryState) SetStorageAt(addr felt.ContractAddress, key felt.StorageKey, value felt.Felt) error {
	s.storage[storageCacheKey(addr, key)] = value
	return nil
}

func (s *memoryState) SetClassHashAt(addr felt.ContractAddress, classHash felt.ClassHash) error {
	s.classHashes[felt.Felt(addr).Bytes32()] = classHash
	return nil
}

func (s *memoryState) GetBlockHash(blockNumber uint64) (felt.Felt, error) {
	return felt.FromUint64(blockNumber), nil
}

func storageCacheKey(addr felt.ContractAddress, key felt.StorageKey) [32]byte {
	a := felt.Felt(addr).Bytes32()
	k := felt.Felt(key).Bytes32()
	var out [32]byte
	for i := range out {
		out[i] = a[i] ^ k[i]
	}
	return out
}

// noVM is the VM this CLI wires up by default. This module's scope is the
// entry-point dispatch and syscall core; the bytecode interpreter a real
// deployment plugs in behind blockifier.VM lives outside it. Running a
// scenario through noVM still exercises class resolution, the faulty-class
// gate and recursion bounds, but any entry point that would actually reach
// the VM fails with errNoVM — wire a real blockifier.VM implementation in
// to exercise retdata, events or nested calls end to end.
type noVM struct{}

var errNoVM = fmt.Errorf("entrypointcli: no VM wired up; this build only exercises dispatch and syscall plumbing")

func (noVM) ReadFelt(blockifier.Pointer) (felt.Felt, error)       { return felt.Felt{}, errNoVM }
func (noVM) ReadPointer(blockifier.Pointer) (blockifier.Pointer, error) {
	return blockifier.Pointer{}, errNoVM
}
func (noVM) WriteFelt(blockifier.Pointer, felt.Felt) error             { return errNoVM }
func (noVM) WritePointer(blockifier.Pointer, blockifier.Pointer) error { return errNoVM }
func (noVM) AllocateSegment([]blockifier.Word) (blockifier.Pointer, error) {
	return blockifier.Pointer{}, errNoVM
}
func (noVM) ResolveOperand(blockifier.Operand) (blockifier.Pointer, error) {
	return blockifier.Pointer{}, errNoVM
}
func (noVM) Run(blockifier.CompiledClass, blockifier.EntryPointType, felt.EntryPointSelector, []felt.Felt, uint64, blockifier.HintProcessor, blockifier.StepTracker) (blockifier.RunResult, error) {
	return blockifier.RunResult{}, errNoVM
}

func runPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var files []string
	if info.IsDir() {
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && strings.HasSuffix(p, ".scen.json") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		files = []string{path}
	}

	anyFailed := false
	for _, f := range files {
		s, err := scenario.Load(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}

		h := host.New(newMemoryState(), noVM{})
		failures, err := scenario.Run(s, h)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		if len(failures) == 0 {
			fmt.Printf("PASS  %s (%s)\n", f, s.Name)
			continue
		}
		anyFailed = true
		fmt.Printf("FAIL  %s (%s)\n", f, s.Name)
		for _, failure := range failures {
			fmt.Printf("  step %d %q: %s\n", failure.Index, failure.Comment, failure.Reason)
		}
	}

	if anyFailed {
		return fmt.Errorf("entrypointcli: one or more scenario steps failed")
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "entrypointcli",
		Usage: "run a scenario fixture (or directory of .scen.json fixtures) against the entry-point execution core",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("entrypointcli: expected exactly one argument, the fixture path")
			}
			return runPath(c.Args().First())
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("run failed", "error", err)
		fmt.Println("ERROR:", err)
		os.Exit(1)
	}
}
