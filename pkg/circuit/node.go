package circuit

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation reports a misuse of the node API, such as assigning a
// fault-effect value directly or querying fault excitation on a fault-free
// node. It is recoverable by the caller and never raised by propagation.
var ErrInvalidOperation = errors.New("invalid operation")

// Fault represents a stuck-at fault attached to a node
type Fault int

const (
	FaultNone Fault = iota // No fault attached
	StuckAt0               // Permanently 0 in the faulty circuit
	StuckAt1               // Permanently 1 in the faulty circuit
)

// String returns a string representation of the fault
func (f Fault) String() string {
	switch f {
	case StuckAt0:
		return "stuck-at-0"
	case StuckAt1:
		return "stuck-at-1"
	default:
		return "none"
	}
}

// ExcitedValue returns the logic value a node carrying this fault holds once
// the fault is excited: D for stuck-at-0 (good 1, faulty 0) and D' for
// stuck-at-1 (good 0, faulty 1). X for FaultNone.
func (f Fault) ExcitedValue() LogicValue {
	switch f {
	case StuckAt0:
		return D
	case StuckAt1:
		return Dnot
	default:
		return X
	}
}

// Node represents a signal in the circuit. It carries the current logic
// value, an optional stuck-at fault and the cached SCOAP controllability
// scores. A node with no driver is a primary input; a node with no
// consumers is a primary output.
type Node struct {
	Name      string
	Value     LogicValue
	StuckAt   Fault
	Driver    *Gate   // Gate that owns this node as its output, nil for primary inputs
	Consumers []*Gate // Gates that read this node as an input

	// Controllability scores. Valid scores are always >= 1; zero means
	// the score has not been computed yet.
	CC0 int
	CC1 int
}

// NewNode creates a fault-free node with value X
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Value:     X,
		StuckAt:   FaultNone,
		Consumers: make([]*Gate, 0),
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	return fmt.Sprintf("%s=%s", n.Name, n.Value)
}

// Assign sets the node value, applying fault masking: assigning 1 to a
// stuck-at-0 node stores D, assigning 0 to a stuck-at-1 node stores D'.
// Fault-effect values cannot be assigned directly; they arise only from
// masking or from ActivateFault.
func (n *Node) Assign(v LogicValue) error {
	if v.IsFaultEffect() {
		return fmt.Errorf("%w: cannot assign %s to %s directly", ErrInvalidOperation, v, n.Name)
	}
	n.apply(v)
	return nil
}

// apply stores a value with fault masking. Gates write their outputs through
// here so fault effects computed by the 5-valued algebra propagate freely;
// the node stays the single point where its own fault is accounted for.
func (n *Node) apply(v LogicValue) {
	switch {
	case n.StuckAt == StuckAt0 && v == One:
		n.Value = D
	case n.StuckAt == StuckAt1 && v == Zero:
		n.Value = Dnot
	default:
		n.Value = v
	}
}

// AttachFault attaches a stuck-at fault to the node. If activate is true the
// value immediately reflects the excited fault (D or D').
func (n *Node) AttachFault(stuckAt Fault, activate bool) {
	n.StuckAt = stuckAt
	if activate {
		n.ActivateFault()
	}
}

// ActivateFault forces the value to the excited fault effect. No-op on a
// fault-free node.
func (n *Node) ActivateFault() {
	if n.IsFaulty() {
		n.Value = n.StuckAt.ExcitedValue()
	}
}

// DetachFault clears the fault and resets the value to X
func (n *Node) DetachFault() {
	n.StuckAt = FaultNone
	n.Value = X
}

// IsFaulty returns true if the node carries a stuck-at fault
func (n *Node) IsFaulty() bool {
	return n.StuckAt != FaultNone
}

// IsFaultExcited reports whether the current value equals the fault effect
// implied by the node's own fault. Returns ErrInvalidOperation on a
// fault-free node.
func (n *Node) IsFaultExcited() (bool, error) {
	if !n.IsFaulty() {
		return false, fmt.Errorf("%w: %s carries no fault", ErrInvalidOperation, n.Name)
	}
	return n.Value == n.StuckAt.ExcitedValue(), nil
}

// Reset sets the value back to X, leaving any attached fault in place
func (n *Node) Reset() {
	n.Value = X
}

// IsPrimaryInput returns true if no gate drives this node
func (n *Node) IsPrimaryInput() bool {
	return n.Driver == nil
}

// IsPrimaryOutput returns true if no gate consumes this node
func (n *Node) IsPrimaryOutput() bool {
	return len(n.Consumers) == 0
}

// IsFanout returns true if the node feeds more than one gate
func (n *Node) IsFanout() bool {
	return len(n.Consumers) > 1
}

// HasXPath reports whether a path of X-valued nodes leads from one of this
// node's consumer gate outputs to a primary output. A primary output has an
// X-path iff its own value is X. The search procedure uses this to decide
// whether a fault effect reaching this node could still be observed.
func (n *Node) HasXPath() bool {
	if n.IsPrimaryOutput() {
		return n.Value == X
	}

	visited := make(map[*Node]bool)
	stack := make([]*Node, 0, len(n.Consumers))
	for _, g := range n.Consumers {
		if g.Output.Value == X {
			stack = append(stack, g.Output)
		}
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[node] {
			continue
		}
		visited[node] = true
		if node.IsPrimaryOutput() {
			return true
		}
		for _, g := range node.Consumers {
			if g.Output.Value == X && !visited[g.Output] {
				stack = append(stack, g.Output)
			}
		}
	}
	return false
}

// addConsumer records a gate that reads this node as an input
func (n *Node) addConsumer(g *Gate) {
	n.Consumers = append(n.Consumers, g)
}
