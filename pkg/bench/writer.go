package bench

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/larosek/podem-atpg/pkg/circuit"
)

// Format selects the test-vector output encoding
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// WriteVectors writes the generated test vectors, keyed by fault descriptor,
// in the requested format. Faults are emitted in sorted order so the output
// is stable.
func WriteVectors(w io.Writer, tests map[string]map[string]circuit.LogicValue, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, tests)
	case FormatYAML:
		return writeYAML(w, tests)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func sortedFaults(tests map[string]map[string]circuit.LogicValue) []string {
	faults := make([]string, 0, len(tests))
	for fault := range tests {
		faults = append(faults, fault)
	}
	sort.Strings(faults)
	return faults
}

func sortedInputs(vector map[string]circuit.LogicValue) []string {
	inputs := make([]string, 0, len(vector))
	for input := range vector {
		inputs = append(inputs, input)
	}
	sort.Strings(inputs)
	return inputs
}

func writeText(w io.Writer, tests map[string]map[string]circuit.LogicValue) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d test vectors\n", len(tests))
	for _, fault := range sortedFaults(tests) {
		fmt.Fprintf(bw, "%s:", fault)
		vector := tests[fault]
		for _, input := range sortedInputs(vector) {
			fmt.Fprintf(bw, " %s=%s", input, vector[input])
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// vectorDoc is the YAML document layout for one fault
type vectorDoc struct {
	Fault  string            `yaml:"fault"`
	Inputs map[string]string `yaml:"inputs"`
}

func writeYAML(w io.Writer, tests map[string]map[string]circuit.LogicValue) error {
	docs := make([]vectorDoc, 0, len(tests))
	for _, fault := range sortedFaults(tests) {
		inputs := make(map[string]string, len(tests[fault]))
		for input, value := range tests[fault] {
			inputs[input] = value.String()
		}
		docs = append(docs, vectorDoc{Fault: fault, Inputs: inputs})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(docs)
}
