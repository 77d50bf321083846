// Package gascost loads and looks up the per-syscall gas cost table: the
// flat name->cost map a deployment publishes as a TOML document, decoded
// into a typed Table the way a protocol-level gas schedule is decoded
// elsewhere in this stack.
package gascost

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"
)

// Table is the decoded gas cost schedule: a base cost per syscall
// selector name, plus a handful of linear-cost parameters for syscalls
// whose cost depends on the size of their input. Of those, only
// KeccakRoundCost is charged by a syscall handler (once per Keccak input
// block, against the step budget); StorageKeyCost, EventKeyCost,
// EventDataWordCost and MessagePayloadCost are decoded and carried, but no
// handler reads them.
type Table struct {
	Base map[string]uint64 `mapstructure:"base"`

	KeccakRoundCost    uint64 `mapstructure:"keccak_round_cost"`
	StorageKeyCost     uint64 `mapstructure:"storage_key_cost"`
	EventKeyCost       uint64 `mapstructure:"event_key_cost"`
	EventDataWordCost  uint64 `mapstructure:"event_data_word_cost"`
	MessagePayloadCost uint64 `mapstructure:"message_payload_word_cost"`
}

// Cost returns the base cost registered for selector, or ok=false if the
// table carries no entry for it. Parse does not merge in Default's values,
// so a table parsed from a document that omits a selector reports ok=false
// for it.
func (t *Table) Cost(selectorName string) (uint64, bool) {
	c, ok := t.Base[selectorName]
	return c, ok
}

// Parse decodes a gas cost table from raw TOML bytes.
func Parse(raw []byte) (*Table, error) {
	tree, err := toml.LoadBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("gascost: parsing TOML: %w", err)
	}

	var t Table
	if err := mapstructure.Decode(tree.ToMap(), &t); err != nil {
		return nil, fmt.Errorf("gascost: decoding table: %w", err)
	}
	return &t, nil
}

// Default is the built-in gas cost table used when a deployment supplies
// no override document.
func Default() *Table {
	return &Table{
		Base: map[string]uint64{
			"call_contract":                 10000,
			"library_call":                  10000,
			"library_call_l1_handler":       10000,
			"deploy":                        50000,
			"storage_read":                  1000,
			"storage_write":                 2000,
			"emit_event":                    500,
			"send_message_to_l1":            1000,
			"get_execution_info":            200,
			"keccak":                        300,
			"secp256k1_new":                 1000,
			"secp256k1_add":                 500,
			"secp256k1_mul":                 2000,
			"secp256k1_get_point_from_x":    1000,
			"secp256k1_get_xy":              500,
			"replace_class":                 5000,
			"get_block_hash":                200,
		},
		KeccakRoundCost:    200,
		StorageKeyCost:     50,
		EventKeyCost:       50,
		EventDataWordCost:  50,
		MessagePayloadCost: 50,
	}
}
