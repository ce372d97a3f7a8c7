package circuit

import "math/bits"

// ComputeControllability computes and caches the SCOAP controllability
// scores of the node: cc0 is the estimated number of primary-input
// assignments needed to force the node to 0, cc1 likewise for 1. Primary
// inputs are always (1, 1). Any other node applies its driver's formula over
// the already-computed scores of the driver's inputs, so callers must walk
// the circuit in dependency order: primary inputs first, then gates by
// non-decreasing depth.
func (n *Node) ComputeControllability() (cc0, cc1 int) {
	if n.IsPrimaryInput() {
		n.CC0, n.CC1 = 1, 1
		return 1, 1
	}

	inputs := n.Driver.Inputs
	switch n.Driver.Type {
	case NOT:
		cc0 = inputs[0].CC1 + 1
		cc1 = inputs[0].CC0 + 1
	case AND:
		cc0 = minCC0(inputs) + 1
		cc1 = sumCC1(inputs) + 1
	case NAND:
		cc0 = sumCC1(inputs) + 1
		cc1 = minCC0(inputs) + 1
	case OR:
		cc0 = sumCC0(inputs) + 1
		cc1 = minCC1(inputs) + 1
	case NOR:
		cc0 = minCC1(inputs) + 1
		cc1 = sumCC0(inputs) + 1
	case XOR:
		cc0 = min(sumCC0(inputs), sumCC1(inputs)) + 1
		cc1 = oddParityCost(inputs) + 1
	case XNOR:
		cc0 = oddParityCost(inputs) + 1
		cc1 = min(sumCC0(inputs), sumCC1(inputs)) + 1
	}

	n.CC0, n.CC1 = cc0, cc1
	return cc0, cc1
}

// oddParityCost returns the minimum, over every odd-sized subset of the
// inputs, of the cost of driving the subset to 1 and the rest to 0. An odd
// number of 1s is exactly what forces an XOR output to 1 (and an XNOR
// output to 0). Subsets are enumerated exhaustively; fan-in of real gates is
// small enough that the exponential enumeration does not matter.
func oddParityCost(inputs []*Node) int {
	best := -1
	for mask := 1; mask < 1<<len(inputs); mask++ {
		if bits.OnesCount(uint(mask))%2 == 0 {
			continue
		}
		cost := 0
		for i, in := range inputs {
			if mask&(1<<i) != 0 {
				cost += in.CC1
			} else {
				cost += in.CC0
			}
		}
		if best == -1 || cost < best {
			best = cost
		}
	}
	return best
}

func minCC0(inputs []*Node) int {
	m := inputs[0].CC0
	for _, in := range inputs[1:] {
		if in.CC0 < m {
			m = in.CC0
		}
	}
	return m
}

func minCC1(inputs []*Node) int {
	m := inputs[0].CC1
	for _, in := range inputs[1:] {
		if in.CC1 < m {
			m = in.CC1
		}
	}
	return m
}

func sumCC0(inputs []*Node) int {
	sum := 0
	for _, in := range inputs {
		sum += in.CC0
	}
	return sum
}

func sumCC1(inputs []*Node) int {
	sum := 0
	for _, in := range inputs {
		sum += in.CC1
	}
	return sum
}
