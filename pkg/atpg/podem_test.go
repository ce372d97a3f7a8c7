package atpg

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larosek/podem-atpg/pkg/bench"
	"github.com/larosek/podem-atpg/pkg/circuit"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// verifyDetects applies the vector to the circuit with the fault injected
// and checks that a fault effect reaches a primary output
func verifyDetects(t *testing.T, c *circuit.Circuit, site *circuit.Node, fault circuit.Fault, vector map[string]circuit.LogicValue) {
	t.Helper()
	c.ResetValues()
	site.AttachFault(fault, false)
	defer func() {
		site.DetachFault()
		c.ResetValues()
	}()

	for name, value := range vector {
		if value == circuit.X {
			continue
		}
		require.NoError(t, c.NodeByName(name).Assign(value))
	}
	c.Simulate()
	assert.True(t, c.TestDetected(), "vector %v does not detect %s %s", vector, site.Name, fault)
}

func TestFindTestSingleAND(t *testing.T) {
	c := circuit.New("and")
	a, b := c.NewInput("a"), c.NewInput("b")
	c.AddNamedGate("", circuit.AND, "f", a, b)

	gen := New(c, quietLogger())
	vector, err := gen.FindTest(a, circuit.StuckAt0)
	require.NoError(t, err)

	// The only test for a/0 is a=1, b=1
	assert.Equal(t, circuit.One, vector["a"])
	assert.Equal(t, circuit.One, vector["b"])
	verifyDetects(t, c, a, circuit.StuckAt0, vector)
}

func TestFindTestInverterChain(t *testing.T) {
	c := circuit.New("chain")
	a := c.NewInput("a")
	g1 := c.AddGate(circuit.NOT, a)
	c.AddGate(circuit.NOT, g1.Output)

	gen := New(c, quietLogger())
	vector, err := gen.FindTest(a, circuit.StuckAt1)
	require.NoError(t, err)
	assert.Equal(t, circuit.Zero, vector["a"], "exciting stuck-at-1 needs a 0")
	verifyDetects(t, c, a, circuit.StuckAt1, vector)
}

func TestFindTestInternalFault(t *testing.T) {
	// f = OR(AND(a, b), NOT(c)); fault on the AND output
	c := circuit.New("internal")
	a, b, d := c.NewInput("a"), c.NewInput("b"), c.NewInput("c")
	g1 := c.AddNamedGate("", circuit.AND, "w1", a, b)
	g2 := c.AddNamedGate("", circuit.NOT, "w2", d)
	c.AddNamedGate("", circuit.OR, "f", g1.Output, g2.Output)

	gen := New(c, quietLogger())
	vector, err := gen.FindTest(g1.Output, circuit.StuckAt0)
	require.NoError(t, err)

	// Excitation needs a=b=1; propagation through the OR needs NOT(c)=0,
	// so c=1.
	assert.Equal(t, circuit.One, vector["a"])
	assert.Equal(t, circuit.One, vector["b"])
	assert.Equal(t, circuit.One, vector["c"])
	verifyDetects(t, c, g1.Output, circuit.StuckAt0, vector)
}

func TestFindTestThroughXOR(t *testing.T) {
	c := circuit.New("xor")
	a, b := c.NewInput("a"), c.NewInput("b")
	c.AddNamedGate("", circuit.XOR, "f", a, b)

	gen := New(c, quietLogger())
	vector, err := gen.FindTest(a, circuit.StuckAt0)
	require.NoError(t, err)
	assert.Equal(t, circuit.One, vector["a"])
	assert.NotEqual(t, circuit.X, vector["b"], "the side input must be settled")
	verifyDetects(t, c, a, circuit.StuckAt0, vector)
}

// redundantCircuit builds f = AND(a, OR(a, b)), in which the OR output
// stuck-at-1 is untestable: exciting it needs a=0, propagating it needs a=1.
func redundantCircuit() (*circuit.Circuit, *circuit.Node) {
	c := circuit.New("redundant")
	a, b := c.NewInput("a"), c.NewInput("b")
	g1 := c.AddNamedGate("", circuit.OR, "w1", a, b)
	c.AddNamedGate("", circuit.AND, "f", a, g1.Output)
	return c, g1.Output
}

func TestFindTestUntestableFault(t *testing.T) {
	c, site := redundantCircuit()
	gen := New(c, quietLogger())

	vector, err := gen.FindTest(site, circuit.StuckAt1)
	assert.Nil(t, vector)
	require.ErrorIs(t, err, ErrUntestable)
	assert.Equal(t, 1, gen.Stats.Untestable)
}

func TestFindTestBacktrackLimit(t *testing.T) {
	c, site := redundantCircuit()
	gen := New(c, quietLogger())
	gen.BacktrackLimit = 0

	_, err := gen.FindTest(site, circuit.StuckAt1)
	require.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 1, gen.Stats.Aborted)
}

func TestFindTestLeavesCircuitClean(t *testing.T) {
	c := circuit.New("clean")
	a, b := c.NewInput("a"), c.NewInput("b")
	c.AddNamedGate("", circuit.AND, "f", a, b)

	gen := New(c, quietLogger())
	_, err := gen.FindTest(a, circuit.StuckAt0)
	require.NoError(t, err)

	assert.False(t, a.IsFaulty(), "fault detached after the search")
	for _, node := range c.Nodes {
		assert.Equal(t, circuit.X, node.Value)
	}
}

func TestGenerateAllOnSingleGate(t *testing.T) {
	c := circuit.New("and")
	a, b := c.NewInput("a"), c.NewInput("b")
	c.AddNamedGate("", circuit.AND, "f", a, b)

	gen := New(c, quietLogger())
	tests := gen.GenerateAll()

	// Every stuck-at fault on a, b and f is testable
	assert.Len(t, tests, 6)
	assert.Equal(t, 6, gen.Stats.TestsFound)
	assert.Equal(t, 0, gen.Stats.Untestable)
	assert.Contains(t, tests, "a/0")
	assert.Contains(t, tests, "f/1")
}

const c17Bench = `
# c17 benchmark
INPUT(G1)
INPUT(G2)
INPUT(G3)
INPUT(G6)
INPUT(G7)
OUTPUT(G22)
OUTPUT(G23)
G10 = NAND(G1, G3)
G11 = NAND(G3, G6)
G16 = NAND(G2, G11)
G19 = NAND(G11, G7)
G22 = NAND(G10, G16)
G23 = NAND(G16, G19)
`

func TestGenerateAllOnC17(t *testing.T) {
	c, err := bench.Parse(strings.NewReader(c17Bench), "c17")
	require.NoError(t, err)

	gen := New(c, quietLogger())
	tests := gen.GenerateAll()

	// c17 is irredundant: both stuck-at faults on each of its 11 signals
	// are testable.
	assert.Len(t, tests, 22)
	assert.Equal(t, 0, gen.Stats.Untestable)
	assert.Equal(t, 0, gen.Stats.Aborted)

	// Every generated vector must actually detect its fault
	for key, vector := range tests {
		name, fault, err := bench.ParseFault(key)
		require.NoError(t, err)
		verifyDetects(t, c, c.NodeByName(name), fault, vector)
	}
}

func TestNewComputesControllability(t *testing.T) {
	c := circuit.New("cc")
	a, b := c.NewInput("a"), c.NewInput("b")
	g := c.AddGate(circuit.AND, a, b)

	New(c, quietLogger())
	assert.Equal(t, 2, g.Output.CC0)
	assert.Equal(t, 3, g.Output.CC1)
}

func TestErrorsAreDistinguishable(t *testing.T) {
	assert.False(t, errors.Is(ErrUntestable, ErrAborted))
	assert.False(t, errors.Is(ErrAborted, ErrUntestable))
}
