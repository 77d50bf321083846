package blockifier

import "github.com/NethermindEth/blockifier-go/felt"

// EntryPointType partitions a class's entry points into the three ABI
// kinds a transaction can target.
type EntryPointType int

const (
	EntryPointTypeExternal EntryPointType = iota
	EntryPointTypeL1Handler
	EntryPointTypeConstructor
)

// String implements fmt.Stringer.
func (t EntryPointType) String() string {
	switch t {
	case EntryPointTypeExternal:
		return "EXTERNAL"
	case EntryPointTypeL1Handler:
		return "L1_HANDLER"
	case EntryPointTypeConstructor:
		return "CONSTRUCTOR"
	default:
		return "UNKNOWN"
	}
}

// CallType distinguishes a normal cross-contract call, which executes
// against the callee's own storage, from a library call, which executes
// the callee's code against the caller's storage.
type CallType int

const (
	CallTypeCall CallType = iota
	CallTypeDelegate
)

// String implements fmt.Stringer.
func (t CallType) String() string {
	switch t {
	case CallTypeCall:
		return "Call"
	case CallTypeDelegate:
		return "Delegate"
	default:
		return "Unknown"
	}
}

// ConstructorEntryPointName is the reserved entry-point name every
// constructor is registered under, used to synthesize an empty-constructor
// call when a class declares no explicit constructor.
const ConstructorEntryPointName = "constructor"

// NStepsResource is the resource-bookkeeping name for the Cairo step
// counter, as distinguished from builtin-usage resources.
const NStepsResource = "n_steps"

// MaxStepsPerTx bounds the total number of Cairo steps a single
// transaction's entire call tree may consume, shared across every frame via
// the ResourceEnvelope.
const MaxStepsPerTx = 4_000_000

// MaxRecursionDepth bounds how deeply CallDispatcher may recurse into
// nested CallContract/LibraryCall/Deploy invocations before refusing to
// enter another frame.
const MaxRecursionDepth = 50

// FaultyClassHash is a well-known class hash that is always treated as
// already-failed: any attempt to execute an entry point against it fails
// immediately without invoking the VM. It exists so that a network can
// retroactively neutralize a declared class found to violate protocol
// rules, without being able to forge an address collision.
var FaultyClassHash = func() felt.ClassHash {
	f, err := felt.FromHex("0x1A7820094FEAF82D53F53F214B81292D717E7BB9A92BB2488092CD306F3993F")
	if err != nil {
		panic(err)
	}
	return felt.ClassHash(f)
}()

// Protocol error words are ASCII-packed felts a failing syscall writes into
// its Retdata in lieu of a response payload, mirroring the wire constants a
// Cairo contract's panic handler recognizes by name.
var (
	OutOfGasError              = packAsciiError("Out of gas")
	EntryPointNotFoundError    = packAsciiError("ENTRYPOINT_NOT_FOUND")
	InvalidInputLenError       = packAsciiError("Invalid input length")
	InvalidArgumentError       = packAsciiError("Invalid argument")
	InvalidSyscallInputError   = packAsciiError("Invalid syscall input")
	BlockNumberOutOfRangeError = packAsciiError("BLOCK_NUMBER_OUT_OF_RANGE")
)

func packAsciiError(s string) felt.Felt {
	return felt.FromBytesBigEndian([]byte(s))
}
