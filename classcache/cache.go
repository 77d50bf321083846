// Package classcache wraps an LRU cache of compiled contract classes in
// front of a blockifier.State, so that a class hash hit repeatedly within
// a block (a popular ERC-20, an account's own class) is decoded once.
package classcache

import (
	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-storage-go/lrucache"
)

var log = logger.GetOrCreate("classcache")

// Cache decorates a blockifier.State, caching GetCompiledContractClass
// results by class hash. Every other State method passes straight
// through to the wrapped State unchanged.
type Cache struct {
	blockifier.State
	classes *lrucache.LRUCache
}

// New wraps state with an LRU class cache holding up to capacity entries.
func New(state blockifier.State, capacity int) (*Cache, error) {
	c, err := lrucache.NewCache(capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{State: state, classes: c}, nil
}

// GetCompiledContractClass returns the cached class for classHash if
// present, otherwise loads it from the wrapped State and caches the
// result before returning it.
func (c *Cache) GetCompiledContractClass(classHash felt.ClassHash) (blockifier.CompiledClass, error) {
	key := felt.Felt(classHash).Bytes32()
	if cached, ok := c.classes.Get(key[:]); ok {
		log.Trace("class cache hit", "class", classHash.Hex())
		return cached.(blockifier.CompiledClass), nil
	}

	class, err := c.State.GetCompiledContractClass(classHash)
	if err != nil {
		return nil, err
	}
	c.classes.Put(key[:], class, 0)
	return class, nil
}
