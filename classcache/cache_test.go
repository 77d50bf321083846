package classcache

import (
	"testing"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/stretchr/testify/require"
)

type countingState struct {
	blockifier.State
	loads int
	class blockifier.CompiledClass
}

func (s *countingState) GetCompiledContractClass(felt.ClassHash) (blockifier.CompiledClass, error) {
	s.loads++
	return s.class, nil
}

type stubClass struct{}

func (stubClass) EntryPointOffset(blockifier.EntryPointType, felt.EntryPointSelector) (int, bool) {
	return 0, false
}
func (stubClass) ConstructorSelector() (felt.EntryPointSelector, bool) { return felt.EntryPointSelector{}, false }

func TestCacheLoadsOnceForRepeatedClassHash(t *testing.T) {
	inner := &countingState{class: stubClass{}}
	cache, err := New(inner, 8)
	require.NoError(t, err)

	ch := felt.ClassHash(felt.FromUint64(1))
	_, err = cache.GetCompiledContractClass(ch)
	require.NoError(t, err)
	_, err = cache.GetCompiledContractClass(ch)
	require.NoError(t, err)

	require.Equal(t, 1, inner.loads)
}

func TestCacheMissesForDistinctClassHash(t *testing.T) {
	inner := &countingState{class: stubClass{}}
	cache, err := New(inner, 8)
	require.NoError(t, err)

	_, err = cache.GetCompiledContractClass(felt.ClassHash(felt.FromUint64(1)))
	require.NoError(t, err)
	_, err = cache.GetCompiledContractClass(felt.ClassHash(felt.FromUint64(2)))
	require.NoError(t, err)

	require.Equal(t, 2, inner.loads)
}
