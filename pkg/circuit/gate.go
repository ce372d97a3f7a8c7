package circuit

import "fmt"

// GateType represents the type of logic gate
type GateType int

const (
	NOT GateType = iota
	AND
	NAND
	OR
	NOR
	XOR
	XNOR
)

// String returns a string representation of the gate type
func (gt GateType) String() string {
	switch gt {
	case NOT:
		return "NOT"
	case AND:
		return "AND"
	case NAND:
		return "NAND"
	case OR:
		return "OR"
	case NOR:
		return "NOR"
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	default:
		return "UNKNOWN"
	}
}

// Gate represents a logic gate. It reads a fixed, ordered list of input
// nodes and exclusively owns its output node, which is created alongside the
// gate. Depth is the length of the longest gate chain from a primary input
// to this gate; it is computed once at construction and drives simulation
// order.
type Gate struct {
	Name   string
	Type   GateType
	Inputs []*Node
	Output *Node
	Depth  int
}

// NewGate creates a gate over existing input nodes together with its output
// node. Wrong arity (NOT with anything but one input, any other type with
// fewer than two) is a programming error and panics.
func NewGate(name string, gateType GateType, outputName string, inputs ...*Node) *Gate {
	if gateType == NOT {
		if len(inputs) != 1 {
			panic(fmt.Sprintf("circuit: NOT gate %s requires exactly 1 input, got %d", name, len(inputs)))
		}
	} else if len(inputs) < 2 {
		panic(fmt.Sprintf("circuit: %s gate %s requires at least 2 inputs, got %d", gateType, name, len(inputs)))
	}

	g := &Gate{
		Name:   name,
		Type:   gateType,
		Inputs: inputs,
	}
	for _, in := range inputs {
		in.addConsumer(g)
	}
	g.Output = NewNode(outputName)
	g.Output.Driver = g
	g.Depth = g.computeDepth()
	return g
}

// computeDepth returns 1 + the maximum depth among the gates driving this
// gate's inputs; 1 if every input is a primary input. Inputs never change
// after construction, so the depth is fixed for the gate's lifetime.
func (g *Gate) computeDepth() int {
	depth := 0
	for _, in := range g.Inputs {
		if in.IsPrimaryInput() {
			continue
		}
		if in.Driver.Depth > depth {
			depth = in.Driver.Depth
		}
	}
	return depth + 1
}

// String returns a string representation of the gate
func (g *Gate) String() string {
	return fmt.Sprintf("%s(%s)", g.Name, g.Type)
}

// ControllingValue returns the single input value that determines the output
// regardless of the other inputs: 0 for AND/NAND, 1 for OR/NOR. NOT, XOR and
// XNOR have no controlling value and yield X.
func (g *Gate) ControllingValue() LogicValue {
	switch g.Type {
	case AND, NAND:
		return Zero
	case OR, NOR:
		return One
	default:
		return X
	}
}

// NonControllingValue returns the complement of the controlling value, or X
// for gate types without one
func (g *Gate) NonControllingValue() LogicValue {
	switch g.Type {
	case AND, NAND:
		return One
	case OR, NOR:
		return Zero
	default:
		return X
	}
}

// Evaluate computes the gate's output value from the current input values
// using the 5-valued algebra. It never writes the output node.
func (g *Gate) Evaluate() LogicValue {
	values := make([]LogicValue, len(g.Inputs))
	for i, in := range g.Inputs {
		values[i] = in.Value
	}

	switch g.Type {
	case NOT:
		return values[0].Invert()
	case AND:
		return evalAND(values)
	case NAND:
		return evalAND(values).Invert()
	case OR:
		return evalOR(values)
	case NOR:
		return evalOR(values).Invert()
	case XOR:
		return evalXOR(values)
	case XNOR:
		return evalXOR(values).Invert()
	default:
		return X
	}
}

// evalAND implements the 5-valued AND table: 0 dominates; all 1s give 1;
// D and D' together cancel to 0; X makes the result X; otherwise the lone
// fault effect passes through.
func evalAND(values []LogicValue) LogicValue {
	hasX, hasD, hasDnot := false, false, false
	allOne := true
	for _, v := range values {
		switch v {
		case Zero:
			return Zero
		case X:
			hasX = true
			allOne = false
		case D:
			hasD = true
			allOne = false
		case Dnot:
			hasDnot = true
			allOne = false
		}
	}
	if allOne {
		return One
	}
	if hasD && hasDnot {
		return Zero
	}
	if hasX {
		return X
	}
	if hasD {
		return D
	}
	return Dnot
}

// evalOR is the dual of evalAND: 1 dominates; all 0s give 0; D and D'
// together give 1; X makes the result X; otherwise the lone fault effect
// passes through.
func evalOR(values []LogicValue) LogicValue {
	hasX, hasD, hasDnot := false, false, false
	allZero := true
	for _, v := range values {
		switch v {
		case One:
			return One
		case X:
			hasX = true
			allZero = false
		case D:
			hasD = true
			allZero = false
		case Dnot:
			hasDnot = true
			allZero = false
		}
	}
	if allZero {
		return Zero
	}
	if hasD && hasDnot {
		return One
	}
	if hasX {
		return X
	}
	if hasD {
		return D
	}
	return Dnot
}

// evalXOR reduces the inputs pairwise from the right using
// xor(a,b) = or(and(a, not b), and(b, not a)), which keeps the D/D'
// propagation rules of AND and OR intact for any number of inputs.
func evalXOR(values []LogicValue) LogicValue {
	acc := values[len(values)-1]
	for i := len(values) - 2; i >= 0; i-- {
		acc = xor2(values[i], acc)
	}
	return acc
}

func xor2(a, b LogicValue) LogicValue {
	first := evalAND([]LogicValue{a, b.Invert()})
	second := evalAND([]LogicValue{b, a.Invert()})
	return evalOR([]LogicValue{first, second})
}

// Propagate evaluates the gate and writes the result to the output node.
// The write goes through the node's masked setter, so a fault attached to
// the output converts 0/1 into the matching fault effect. Returns the value
// the output node ends up with.
func (g *Gate) Propagate() LogicValue {
	g.Output.apply(g.Evaluate())
	return g.Output.Value
}

// Reset resets all input nodes and the output node to X. Fault attachments
// are left untouched.
func (g *Gate) Reset() {
	for _, in := range g.Inputs {
		in.Reset()
	}
	g.Output.Reset()
}

// IsOnDFrontier reports whether the gate sits on the D-frontier: its output
// is still X while at least one input already carries a fault effect, so
// assigning the remaining inputs could push the effect through.
func (g *Gate) IsOnDFrontier() bool {
	if g.Output.Value != X {
		return false
	}
	for _, in := range g.Inputs {
		if in.Value.IsFaultEffect() {
			return true
		}
	}
	return false
}

// UnassignedInputs returns the inputs whose value is still X
func (g *Gate) UnassignedInputs() []*Node {
	unassigned := make([]*Node, 0, len(g.Inputs))
	for _, in := range g.Inputs {
		if in.Value == X {
			unassigned = append(unassigned, in)
		}
	}
	return unassigned
}

// AssignedInputs returns the inputs whose value is definite
func (g *Gate) AssignedInputs() []*Node {
	assigned := make([]*Node, 0, len(g.Inputs))
	for _, in := range g.Inputs {
		if in.Value != X {
			assigned = append(assigned, in)
		}
	}
	return assigned
}

// candidateInputs returns the inputs scanned by the controllable-input
// queries: the unassigned inputs when unassignedOnly is set and some exist,
// all inputs otherwise.
func (g *Gate) candidateInputs(unassignedOnly bool) []*Node {
	if unassignedOnly {
		if unassigned := g.UnassignedInputs(); len(unassigned) > 0 {
			return unassigned
		}
	}
	return g.Inputs
}

// HardestControllableInput returns the candidate input with the highest
// controllability score toward target (cc0 for Zero, cc1 otherwise). Ties
// keep the first input encountered in input order; downstream search depends
// on that determinism. Returns nil if no candidate has a computed score.
func (g *Gate) HardestControllableInput(target LogicValue, unassignedOnly bool) *Node {
	var hardest *Node
	best := 0
	for _, in := range g.candidateInputs(unassignedOnly) {
		score := in.CC1
		if target == Zero {
			score = in.CC0
		}
		if score > best {
			hardest = in
			best = score
		}
	}
	return hardest
}

// EasiestControllableInput returns the candidate input with the lowest
// controllability score toward target (cc0 for Zero, cc1 otherwise), first
// minimal input winning ties. Returns nil if there are no candidates.
func (g *Gate) EasiestControllableInput(target LogicValue, unassignedOnly bool) *Node {
	var easiest *Node
	best := 0
	for _, in := range g.candidateInputs(unassignedOnly) {
		score := in.CC1
		if target == Zero {
			score = in.CC0
		}
		if easiest == nil || score < best {
			easiest = in
			best = score
		}
	}
	return easiest
}
