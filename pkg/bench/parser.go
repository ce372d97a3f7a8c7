// Package bench reads circuit descriptions in the ISCAS BENCH format and
// writes generated test vectors.
package bench

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/larosek/podem-atpg/pkg/circuit"
)

// Regular expressions for parsing BENCH format
var (
	inputRegex  = regexp.MustCompile(`^INPUT\((\w+)\)$`)
	outputRegex = regexp.MustCompile(`^OUTPUT\((\w+)\)$`)
	gateRegex   = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\((.+)\)$`)
)

// gateDef is one parsed gate statement, held until its inputs exist
type gateDef struct {
	output string
	typ    circuit.GateType
	inputs []string
	lineNo int
}

// Parse reads a BENCH description and builds the circuit through the
// construction API. Gate statements may appear in any order in the file;
// they are instantiated in dependency order, since a gate can only be built
// over nodes that already exist.
func Parse(r io.Reader, name string) (*circuit.Circuit, error) {
	c := circuit.New(name)
	nodes := make(map[string]*circuit.Node)
	declaredOutputs := make([]string, 0)
	defs := make([]gateDef, 0)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if matches := inputRegex.FindStringSubmatch(line); matches != nil {
			inputName := matches[1]
			if _, exists := nodes[inputName]; exists {
				return nil, fmt.Errorf("line %d: duplicate signal %s", lineNo, inputName)
			}
			nodes[inputName] = c.NewInput(inputName)
			continue
		}

		if matches := outputRegex.FindStringSubmatch(line); matches != nil {
			declaredOutputs = append(declaredOutputs, matches[1])
			continue
		}

		if matches := gateRegex.FindStringSubmatch(line); matches != nil {
			gateType, err := parseGateType(matches[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			def := gateDef{output: matches[1], typ: gateType, lineNo: lineNo}
			for _, in := range strings.Split(matches[3], ",") {
				def.inputs = append(def.inputs, strings.TrimSpace(in))
			}
			defs = append(defs, def)
			continue
		}

		return nil, fmt.Errorf("line %d: unrecognized statement: %s", lineNo, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	// Instantiate gates once all of their input nodes exist. Each sweep must
	// place at least one gate; otherwise the netlist has an undefined signal
	// or a cycle.
	pending := defs
	for len(pending) > 0 {
		next := pending[:0]
		placed := false
		for _, def := range pending {
			inputs, ready := lookupInputs(nodes, def.inputs)
			if !ready {
				next = append(next, def)
				continue
			}
			if _, exists := nodes[def.output]; exists {
				return nil, fmt.Errorf("line %d: duplicate signal %s", def.lineNo, def.output)
			}
			gate := c.AddNamedGate("", def.typ, def.output, inputs...)
			nodes[def.output] = gate.Output
			placed = true
		}
		if !placed {
			return nil, fmt.Errorf("line %d: undefined signal or combinational loop involving %s",
				next[0].lineNo, next[0].output)
		}
		pending = next
	}

	for _, out := range declaredOutputs {
		if _, exists := nodes[out]; !exists {
			return nil, fmt.Errorf("declared output %s is never driven", out)
		}
	}

	return c, nil
}

// ParseFile reads a BENCH circuit from a file, naming the circuit after the
// file's base name
func ParseFile(path string) (*circuit.Circuit, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening circuit file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), ".bench")
	return Parse(file, name)
}

// lookupInputs resolves signal names to nodes; ready is false if any of them
// does not exist yet
func lookupInputs(nodes map[string]*circuit.Node, names []string) ([]*circuit.Node, bool) {
	inputs := make([]*circuit.Node, len(names))
	for i, name := range names {
		node, exists := nodes[name]
		if !exists {
			return nil, false
		}
		inputs[i] = node
	}
	return inputs, true
}

// parseGateType converts a BENCH gate keyword to a GateType. Sequential
// elements and buffers are outside the fault model and are rejected.
func parseGateType(keyword string) (circuit.GateType, error) {
	switch strings.ToUpper(keyword) {
	case "NOT", "INV":
		return circuit.NOT, nil
	case "AND":
		return circuit.AND, nil
	case "NAND":
		return circuit.NAND, nil
	case "OR":
		return circuit.OR, nil
	case "NOR":
		return circuit.NOR, nil
	case "XOR":
		return circuit.XOR, nil
	case "XNOR":
		return circuit.XNOR, nil
	default:
		return 0, fmt.Errorf("unsupported gate type %s", keyword)
	}
}

// ParseFault parses a fault descriptor like "net42/0" into the signal name
// and the stuck-at fault
func ParseFault(s string) (string, circuit.Fault, error) {
	name, value, found := strings.Cut(s, "/")
	if !found || name == "" {
		return "", circuit.FaultNone, fmt.Errorf("invalid fault descriptor %q (expected net/0 or net/1)", s)
	}
	switch value {
	case "0":
		return name, circuit.StuckAt0, nil
	case "1":
		return name, circuit.StuckAt1, nil
	default:
		return "", circuit.FaultNone, fmt.Errorf("invalid stuck-at value %q in fault descriptor %q", value, s)
	}
}
