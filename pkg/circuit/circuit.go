package circuit

import (
	"fmt"
	"sort"
	"strings"
)

// Circuit holds the nodes and gates of one combinational circuit and owns
// the name generator used while building it. Nodes and gates are stored in
// creation order; since a gate can only be built over nodes that already
// exist, creation order is also a valid dependency order.
type Circuit struct {
	Name  string
	Nodes []*Node
	Gates []*Gate

	names   *NameGenerator
	ordered []*Gate // gates sorted by depth, rebuilt after AddGate
}

// New creates an empty circuit
func New(name string) *Circuit {
	return &Circuit{
		Name:  name,
		Nodes: make([]*Node, 0),
		Gates: make([]*Gate, 0),
		names: NewNameGenerator(),
	}
}

// NewInput creates and registers a primary-input node. An empty name draws
// the next label from the generator.
func (c *Circuit) NewInput(name string) *Node {
	if name == "" {
		name = c.names.NextNodeName()
	}
	node := NewNode(name)
	c.Nodes = append(c.Nodes, node)
	return node
}

// AddGate creates a gate of the given type over existing nodes, registers it
// together with its freshly created output node, and returns it. Gate and
// output names come from the generator.
func (c *Circuit) AddGate(gateType GateType, inputs ...*Node) *Gate {
	return c.AddNamedGate("", gateType, "", inputs...)
}

// AddNamedGate is AddGate with explicit gate and output-node names; either
// may be empty to use a generated one.
func (c *Circuit) AddNamedGate(name string, gateType GateType, outputName string, inputs ...*Node) *Gate {
	if name == "" {
		name = c.names.NextGateName(gateType)
	}
	if outputName == "" {
		outputName = c.names.NextNodeName()
	}
	gate := NewGate(name, gateType, outputName, inputs...)
	c.Gates = append(c.Gates, gate)
	c.Nodes = append(c.Nodes, gate.Output)
	c.ordered = nil
	return gate
}

// orderedGates returns the gates sorted by non-decreasing depth, the order a
// full simulation or controllability pass must use. The order is cached
// until the next AddGate.
func (c *Circuit) orderedGates() []*Gate {
	if c.ordered == nil {
		c.ordered = make([]*Gate, len(c.Gates))
		copy(c.ordered, c.Gates)
		sort.SliceStable(c.ordered, func(i, j int) bool {
			return c.ordered[i].Depth < c.ordered[j].Depth
		})
	}
	return c.ordered
}

// Simulate runs a full forward simulation pass: every gate propagates in
// non-decreasing depth order, so each gate reads up-to-date input values.
func (c *Circuit) Simulate() {
	for _, gate := range c.orderedGates() {
		gate.Propagate()
	}
}

// ComputeControllability computes cc0/cc1 for every node in dependency
// order: primary inputs first, then gate outputs by non-decreasing depth.
func (c *Circuit) ComputeControllability() {
	for _, node := range c.Nodes {
		if node.IsPrimaryInput() {
			node.ComputeControllability()
		}
	}
	for _, gate := range c.orderedGates() {
		gate.Output.ComputeControllability()
	}
}

// ResetValues resets every node value to X. Fault attachments stay in place.
func (c *Circuit) ResetValues() {
	for _, node := range c.Nodes {
		node.Reset()
	}
}

// DetachFaults removes every fault in the circuit
func (c *Circuit) DetachFaults() {
	for _, node := range c.Nodes {
		if node.IsFaulty() {
			node.DetachFault()
		}
	}
}

// DFrontier returns the gates currently on the D-frontier, in depth order
func (c *Circuit) DFrontier() []*Gate {
	frontier := make([]*Gate, 0)
	for _, gate := range c.orderedGates() {
		if gate.IsOnDFrontier() {
			frontier = append(frontier, gate)
		}
	}
	return frontier
}

// TestDetected returns true if some primary output carries a fault effect,
// meaning the current input vector is a test for the injected fault
func (c *Circuit) TestDetected() bool {
	for _, node := range c.Nodes {
		if node.IsPrimaryOutput() && node.Value.IsFaultEffect() {
			return true
		}
	}
	return false
}

// Inputs returns the primary inputs in creation order
func (c *Circuit) Inputs() []*Node {
	inputs := make([]*Node, 0)
	for _, node := range c.Nodes {
		if node.IsPrimaryInput() {
			inputs = append(inputs, node)
		}
	}
	return inputs
}

// Outputs returns the primary outputs in creation order
func (c *Circuit) Outputs() []*Node {
	outputs := make([]*Node, 0)
	for _, node := range c.Nodes {
		if node.IsPrimaryOutput() {
			outputs = append(outputs, node)
		}
	}
	return outputs
}

// NodeByName returns the node with the given name, or nil
func (c *Circuit) NodeByName(name string) *Node {
	for _, node := range c.Nodes {
		if node.Name == name {
			return node
		}
	}
	return nil
}

// InputVector returns the current primary-input assignment by input name
func (c *Circuit) InputVector() map[string]LogicValue {
	vector := make(map[string]LogicValue)
	for _, input := range c.Inputs() {
		vector[input.Name] = input.Value
	}
	return vector
}

// String returns a string representation of the circuit state
func (c *Circuit) String() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Circuit: %s\n", c.Name))

	builder.WriteString("Inputs: ")
	for _, in := range c.Inputs() {
		builder.WriteString(fmt.Sprintf("%s ", in))
	}

	builder.WriteString("\nOutputs: ")
	for _, out := range c.Outputs() {
		builder.WriteString(fmt.Sprintf("%s ", out))
	}

	builder.WriteString("\nD-Frontier: ")
	for _, gate := range c.DFrontier() {
		builder.WriteString(fmt.Sprintf("%s ", gate.Name))
	}

	return builder.String()
}
