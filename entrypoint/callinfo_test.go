package entrypoint

import (
	"testing"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/stretchr/testify/require"
)

func addr(n uint64) felt.ContractAddress { return felt.ContractAddress(felt.FromUint64(n)) }
func classHash(n uint64) felt.ClassHash  { return felt.ClassHash(felt.FromUint64(n)) }

func TestCallInfoWalkIsPreOrder(t *testing.T) {
	leaf1 := NewCallInfo(CallDescriptor{StorageAddress: addr(2)})
	leaf2 := NewCallInfo(CallDescriptor{StorageAddress: addr(3)})
	root := NewCallInfo(CallDescriptor{StorageAddress: addr(1)})
	root.InnerCalls = []*CallInfo{leaf1, leaf2}

	var visited []uint64
	root.Walk(func(c *CallInfo) {
		visited = append(visited, felt.Felt(c.Call.StorageAddress).Uint64())
	})
	require.Equal(t, []uint64{1, 2, 3}, visited)
}

func TestExecutedClassHashesDedupsAcrossTree(t *testing.T) {
	root := NewCallInfo(CallDescriptor{ClassHash: classHash(10)})
	root.InnerCalls = []*CallInfo{
		NewCallInfo(CallDescriptor{ClassHash: classHash(10)}),
		NewCallInfo(CallDescriptor{ClassHash: classHash(20)}),
	}

	got := root.ExecutedClassHashes()
	require.Len(t, got, 2)
	require.Contains(t, got, felt.Felt(classHash(10)).Bytes32())
	require.Contains(t, got, felt.Felt(classHash(20)).Bytes32())
}

func TestSortedL2ToL1PayloadLengthsOrdersAcrossFrames(t *testing.T) {
	root := NewCallInfo(CallDescriptor{})
	inner := NewCallInfo(CallDescriptor{})
	root.InnerCalls = []*CallInfo{inner}

	root.Execution.Messages = []OrderedL2ToL1Message{{Order: 0, Payload: []felt.Felt{felt.FromUint64(1)}}}
	inner.Execution.Messages = []OrderedL2ToL1Message{{Order: 1, Payload: []felt.Felt{felt.FromUint64(1), felt.FromUint64(2)}}}

	lengths, err := root.SortedL2ToL1PayloadLengths()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, lengths)
}

func TestSortedL2ToL1PayloadLengthsDetectsHole(t *testing.T) {
	root := NewCallInfo(CallDescriptor{})
	root.Execution.Messages = []OrderedL2ToL1Message{
		{Order: 0, Payload: nil},
		{Order: 2, Payload: nil},
	}

	_, err := root.SortedL2ToL1PayloadLengths()
	require.ErrorIs(t, err, blockifier.ErrUnexpectedHoles)
}

func TestSortedL2ToL1PayloadLengthsDetectsDuplicateOrder(t *testing.T) {
	root := NewCallInfo(CallDescriptor{})
	root.Execution.Messages = []OrderedL2ToL1Message{
		{Order: 0, Payload: nil},
		{Order: 0, Payload: nil},
	}

	_, err := root.SortedL2ToL1PayloadLengths()
	require.ErrorIs(t, err, blockifier.ErrInvalidOrder)
}

func TestRecordStorageKeyDedupsByCanonicalForm(t *testing.T) {
	c := NewCallInfo(CallDescriptor{})
	key := felt.StorageKey(felt.FromUint64(42))
	c.RecordStorageKey(key)
	c.RecordStorageKey(key)
	require.Len(t, c.AccessedStorageKeys, 1)
}
