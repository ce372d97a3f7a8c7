package atpg

import (
	"github.com/larosek/podem-atpg/pkg/circuit"
)

// objective is a (node, value) goal the next decision should work toward
type objective struct {
	node  *circuit.Node
	value circuit.LogicValue
}

// nextObjective picks the goal for the next decision. Fault excitation comes
// first: while the site is X the goal is to drive it to the value the fault
// masks. Once excited, the goal is to push the effect through a D-frontier
// gate that still has an X-path to a primary output. Returns viable=false
// when the current assignments cannot lead to a test, which triggers a
// backtrack.
func (p *Podem) nextObjective(site *circuit.Node) (objective, bool) {
	excited, err := site.IsFaultExcited()
	if err != nil {
		return objective{}, false
	}

	if !excited {
		if site.Value != circuit.X {
			// The site settled on a value the fault does not change;
			// this branch of the search is dead.
			p.Logger.Debug("fault not excitable under current assignments", "site", site.Name)
			return objective{}, false
		}
		target := circuit.One
		if site.StuckAt == circuit.StuckAt1 {
			target = circuit.Zero
		}
		return objective{node: site, value: target}, true
	}

	gate := p.pickFrontierGate()
	if gate == nil {
		p.Logger.Debug("fault effect cannot reach an output", "site", site.Name)
		return objective{}, false
	}

	return p.propagationObjective(gate)
}

// pickFrontierGate returns the shallowest D-frontier gate whose output still
// has an X-path to a primary output, nil if none remains.
func (p *Podem) pickFrontierGate() *circuit.Gate {
	for _, gate := range p.Circuit.DFrontier() {
		if gate.Output.HasXPath() {
			return gate
		}
	}
	return nil
}

// propagationObjective targets one unassigned input of a D-frontier gate.
// For gates with a controlling value every side input must end up
// non-controlling, so the hardest one is attacked first. XOR/XNOR have no
// controlling value; any definite value on the remaining inputs extends the
// sensitized path, so the cheapest side is chosen.
func (p *Podem) propagationObjective(gate *circuit.Gate) (objective, bool) {
	nonControlling := gate.NonControllingValue()
	if nonControlling != circuit.X {
		input := gate.HardestControllableInput(nonControlling, true)
		if input == nil || input.Value != circuit.X {
			return objective{}, false
		}
		return objective{node: input, value: nonControlling}, true
	}

	for _, input := range gate.UnassignedInputs() {
		value := circuit.Zero
		if input.CC1 < input.CC0 {
			value = circuit.One
		}
		return objective{node: input, value: value}, true
	}
	return objective{}, false
}
