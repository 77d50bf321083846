package mock

import (
	"testing"

	"github.com/NethermindEth/blockifier-go/entrypoint"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/stretchr/testify/require"
)

// CallInfoVerifier is a fluent assertion builder over a *entrypoint.CallInfo,
// chaining checks so a test reads as a list of expectations rather than a
// block of require.* calls.
type CallInfoVerifier struct {
	t     testing.TB
	frame *entrypoint.CallInfo
}

// Verify starts a chain of assertions against frame.
func Verify(t testing.TB, frame *entrypoint.CallInfo) *CallInfoVerifier {
	require.NotNil(t, frame, "CallInfo is nil")
	return &CallInfoVerifier{t: t, frame: frame}
}

// Ok asserts the call did not fail.
func (v *CallInfoVerifier) Ok() *CallInfoVerifier {
	require.False(v.t, v.frame.Execution.Failed, "expected call to succeed")
	return v
}

// Failed asserts the call failed.
func (v *CallInfoVerifier) Failed() *CallInfoVerifier {
	require.True(v.t, v.frame.Execution.Failed, "expected call to fail")
	return v
}

// Retdata asserts the call's retdata equals want exactly.
func (v *CallInfoVerifier) Retdata(want ...felt.Felt) *CallInfoVerifier {
	got := v.frame.Execution.Retdata
	require.Len(v.t, got, len(want), "retdata length mismatch")
	for i := range want {
		require.True(v.t, got[i].Equal(want[i]), "retdata[%d]: expected %s, got %s", i, want[i].Hex(), got[i].Hex())
	}
	return v
}

// EventCount asserts the call emitted exactly n events.
func (v *CallInfoVerifier) EventCount(n int) *CallInfoVerifier {
	require.Len(v.t, v.frame.Execution.Events, n)
	return v
}

// MessageCount asserts the call sent exactly n L2-to-L1 messages.
func (v *CallInfoVerifier) MessageCount(n int) *CallInfoVerifier {
	require.Len(v.t, v.frame.Execution.Messages, n)
	return v
}

// InnerCallCount asserts the call made exactly n nested calls.
func (v *CallInfoVerifier) InnerCallCount(n int) *CallInfoVerifier {
	require.Len(v.t, v.frame.InnerCalls, n)
	return v
}

// GasConsumedAtMost asserts the call consumed no more than max gas.
func (v *CallInfoVerifier) GasConsumedAtMost(max uint64) *CallInfoVerifier {
	require.LessOrEqual(v.t, v.frame.Execution.GasConsumed, max)
	return v
}
