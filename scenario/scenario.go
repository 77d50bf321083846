// Package scenario runs JSON fixture files describing a sequence of entry
// point calls and their expected outcomes: a Host (from package host)
// owns execution, and each Step's expectations are checked independently
// so one failing step doesn't stop the rest of the fixture from
// reporting what it found.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	blockifier "github.com/NethermindEth/blockifier-go"
	ctxpkg "github.com/NethermindEth/blockifier-go/context"
	"github.com/NethermindEth/blockifier-go/entrypoint"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/NethermindEth/blockifier-go/host"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("scenario")

// Scenario is one fixture file: a name, the steps to run in order, and the
// block context every step executes under.
type Scenario struct {
	Name  string          `json:"name"`
	Block ctxpkg.BlockContext `json:"block"`
	Steps []Step          `json:"steps"`
}

// Step is one entry point call and what the fixture expects it to
// produce.
type Step struct {
	Comment        string   `json:"comment"`
	StorageAddress string   `json:"storageAddress"`
	ClassHash      string   `json:"classHash"`
	Selector       string   `json:"selector"`
	Calldata       []string `json:"calldata"`
	InitialGas     uint64   `json:"initialGas"`

	ExpectFailed  bool     `json:"expectFailed"`
	ExpectRetdata []string `json:"expectRetdata"`
}

// Parse decodes a Scenario from raw JSON bytes.
func Parse(raw []byte) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("scenario: decoding: %w", err)
	}
	return &s, nil
}

// Load reads and parses a Scenario from disk.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: reading %s: %w", path, err)
	}
	return Parse(raw)
}

// StepFailure names one step of a scenario that did not match its
// expectation.
type StepFailure struct {
	Index   int
	Comment string
	Reason  string
}

// Run executes every step of s in order against h, sharing one
// ExecutionContext across the whole scenario (so the step budget, effect
// ordinals and error stack carry over from step to step; storage carries
// over through h's State), and reports every step whose outcome
// didn't match its expectation rather than stopping at the first one.
func Run(s *Scenario, h *host.Host) ([]StepFailure, error) {
	ctx := ctxpkg.NewInvoke(s.Block, ctxpkg.AccountTransactionContext{})

	var failures []StepFailure
	for i, step := range s.Steps {
		call, err := step.toCallDescriptor()
		if err != nil {
			return nil, fmt.Errorf("scenario: step %d: %w", i, err)
		}

		frame, err := h.ExecuteTransactionPhase(call, ctx)
		if err != nil {
			failures = append(failures, StepFailure{Index: i, Comment: step.Comment, Reason: err.Error()})
			continue
		}

		if reason, ok := step.check(frame); !ok {
			failures = append(failures, StepFailure{Index: i, Comment: step.Comment, Reason: reason})
		}
	}

	log.Debug("scenario run complete", "name", s.Name, "steps", len(s.Steps), "failures", len(failures))
	return failures, nil
}

func (s Step) toCallDescriptor() (entrypoint.CallDescriptor, error) {
	addr, err := felt.FromHex(s.StorageAddress)
	if err != nil {
		return entrypoint.CallDescriptor{}, fmt.Errorf("storageAddress: %w", err)
	}
	selector, err := felt.FromHex(s.Selector)
	if err != nil {
		return entrypoint.CallDescriptor{}, fmt.Errorf("selector: %w", err)
	}

	var classHash felt.ClassHash
	if s.ClassHash != "" {
		f, err := felt.FromHex(s.ClassHash)
		if err != nil {
			return entrypoint.CallDescriptor{}, fmt.Errorf("classHash: %w", err)
		}
		classHash = felt.ClassHash(f)
	}

	calldata := make([]felt.Felt, len(s.Calldata))
	for i, c := range s.Calldata {
		f, err := felt.FromHex(c)
		if err != nil {
			return entrypoint.CallDescriptor{}, fmt.Errorf("calldata[%d]: %w", i, err)
		}
		calldata[i] = f
	}

	return entrypoint.CallDescriptor{
		ClassHash:      classHash,
		StorageAddress: felt.ContractAddress(addr),
		EntryPointType: blockifier.EntryPointTypeExternal,
		Selector:       felt.EntryPointSelector(selector),
		Calldata:       calldata,
		InitialGas:     s.InitialGas,
	}, nil
}

func (s Step) check(frame *entrypoint.CallInfo) (reason string, ok bool) {
	if frame.Execution.Failed != s.ExpectFailed {
		return fmt.Sprintf("expected failed=%v, got %v", s.ExpectFailed, frame.Execution.Failed), false
	}
	if s.ExpectRetdata == nil {
		return "", true
	}
	if len(frame.Execution.Retdata) != len(s.ExpectRetdata) {
		return fmt.Sprintf("expected %d retdata words, got %d", len(s.ExpectRetdata), len(frame.Execution.Retdata)), false
	}
	for i, want := range s.ExpectRetdata {
		wantFelt, err := felt.FromHex(want)
		if err != nil {
			return fmt.Sprintf("expectRetdata[%d]: %v", i, err), false
		}
		if !frame.Execution.Retdata[i].Equal(wantFelt) {
			return fmt.Sprintf("retdata[%d]: expected %s, got %s", i, wantFelt.Hex(), frame.Execution.Retdata[i].Hex()), false
		}
	}
	return "", true
}
