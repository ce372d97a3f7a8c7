package atpg

import (
	"github.com/larosek/podem-atpg/pkg/circuit"
)

// backtrace maps an objective on an internal node to a primary-input
// assignment by walking driver gates toward the inputs. At each gate the
// controllability scores decide which input to descend into: when every
// input must take the target value the hardest one is chosen (fail fast),
// when a single input suffices the easiest one is. The walk only descends
// into X-valued nodes, so with a freshly simulated circuit it always ends on
// an unassigned primary input.
func (p *Podem) backtrace(obj objective) (*circuit.Node, circuit.LogicValue) {
	node, value := obj.node, obj.value

	for node != nil && !node.IsPrimaryInput() {
		gate := node.Driver
		var next *circuit.Node

		switch gate.Type {
		case circuit.NOT:
			next = gate.Inputs[0]
			value = value.Invert()

		case circuit.AND, circuit.NAND:
			if gate.Type == circuit.NAND {
				value = value.Invert()
			}
			if value == circuit.One {
				next = gate.HardestControllableInput(circuit.One, true)
			} else {
				next = gate.EasiestControllableInput(circuit.Zero, true)
			}

		case circuit.OR, circuit.NOR:
			if gate.Type == circuit.NOR {
				value = value.Invert()
			}
			if value == circuit.Zero {
				next = gate.HardestControllableInput(circuit.Zero, true)
			} else {
				next = gate.EasiestControllableInput(circuit.One, true)
			}

		case circuit.XOR, circuit.XNOR:
			// With the remaining inputs driven to 0 the output follows the
			// chosen input (inverted for XNOR), so aim the cheapest
			// unassigned input at the target.
			if gate.Type == circuit.XNOR {
				value = value.Invert()
			}
			next = gate.EasiestControllableInput(value, true)
		}

		if next == nil || next.Value != circuit.X {
			p.Logger.Debug("backtrace blocked", "gate", gate.Name, "target", value.String())
			return nil, circuit.X
		}
		node = next
	}

	if node == nil || value == circuit.X {
		return nil, circuit.X
	}
	return node, value
}
