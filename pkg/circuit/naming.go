package circuit

import "fmt"

// NameGenerator hands out default names during circuit construction: nodes
// get bijective base-26 labels (A, B, ..., Z, AA, AB, ...) and gates get a
// per-type sequence number (and1, xor2, ...). The generator is owned by the
// circuit being built; unrelated builds do not share counters.
type NameGenerator struct {
	nodeCount  int
	gateCounts map[GateType]int
}

// NewNameGenerator creates a generator with all counters at zero
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{
		gateCounts: make(map[GateType]int),
	}
}

// NextNodeName returns the next node label in the bijective base-26 sequence
func (ng *NameGenerator) NextNodeName() string {
	ng.nodeCount++
	return bijectiveName(ng.nodeCount)
}

// NextGateName returns the next name for a gate of the given type
func (ng *NameGenerator) NextGateName(gateType GateType) string {
	ng.gateCounts[gateType]++
	return fmt.Sprintf("%s%d", gateTypeLower(gateType), ng.gateCounts[gateType])
}

// bijectiveName converts a 1-based counter to a bijective base-26 label:
// 1 -> A, 26 -> Z, 27 -> AA, 703 -> AAA.
func bijectiveName(n int) string {
	if n == 0 {
		return ""
	}
	quot, rem := (n-1)/26, (n-1)%26
	return bijectiveName(quot) + string(rune('A'+rem))
}

func gateTypeLower(gateType GateType) string {
	switch gateType {
	case NOT:
		return "not"
	case AND:
		return "and"
	case NAND:
		return "nand"
	case OR:
		return "or"
	case NOR:
		return "nor"
	case XOR:
		return "xor"
	case XNOR:
		return "xnor"
	default:
		return "gate"
	}
}
