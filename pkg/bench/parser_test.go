package bench

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larosek/podem-atpg/pkg/circuit"
)

func TestParseSmallCircuit(t *testing.T) {
	src := `
# comment line
INPUT(a)
INPUT(b)
INPUT(c)
OUTPUT(f)

w1 = NAND(a, b)
w2 = NOR(b, c)
f = XOR(w1, w2)
`
	c, err := Parse(strings.NewReader(src), "small")
	require.NoError(t, err)

	assert.Equal(t, "small", c.Name)
	assert.Len(t, c.Inputs(), 3)
	assert.Len(t, c.Gates, 3)
	require.NotNil(t, c.NodeByName("f"))
	assert.True(t, c.NodeByName("f").IsPrimaryOutput())
	assert.Equal(t, circuit.XOR, c.NodeByName("f").Driver.Type)
	assert.Equal(t, 2, c.NodeByName("f").Driver.Depth)
	assert.Equal(t, circuit.NAND, c.NodeByName("w1").Driver.Type)
}

func TestParseOutOfOrderGates(t *testing.T) {
	// The XOR statement references signals defined after it
	src := `
INPUT(a)
INPUT(b)
f = XOR(w1, w2)
w1 = NOT(a)
w2 = NOT(b)
OUTPUT(f)
`
	c, err := Parse(strings.NewReader(src), "ooo")
	require.NoError(t, err)
	assert.Len(t, c.Gates, 3)
	assert.Equal(t, 2, c.NodeByName("f").Driver.Depth)
}

func TestParseInvAlias(t *testing.T) {
	src := `
INPUT(a)
OUTPUT(f)
f = INV(a)
`
	c, err := Parse(strings.NewReader(src), "inv")
	require.NoError(t, err)
	assert.Equal(t, circuit.NOT, c.NodeByName("f").Driver.Type)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unsupported gate",
			src:  "INPUT(a)\nf = DFF(a)\n",
			want: "unsupported gate type",
		},
		{
			name: "undefined signal",
			src:  "INPUT(a)\nf = AND(a, ghost)\n",
			want: "undefined signal",
		},
		{
			name: "duplicate input",
			src:  "INPUT(a)\nINPUT(a)\n",
			want: "duplicate signal",
		},
		{
			name: "redefined signal",
			src:  "INPUT(a)\nINPUT(b)\na = AND(a, b)\n",
			want: "duplicate signal",
		},
		{
			name: "undriven output",
			src:  "INPUT(a)\nOUTPUT(f)\n",
			want: "never driven",
		},
		{
			name: "garbage statement",
			src:  "INPUT(a)\nwat\n",
			want: "unrecognized statement",
		},
		{
			name: "bad arity",
			src:  "INPUT(a)\nINPUT(b)\nf = NOT(a, b)\n",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.want == "" {
				assert.Panics(t, func() {
					_, _ = Parse(strings.NewReader(tc.src), tc.name)
				})
				return
			}
			_, err := Parse(strings.NewReader(tc.src), tc.name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseCombinationalLoop(t *testing.T) {
	src := `
INPUT(a)
w1 = AND(a, w2)
w2 = AND(a, w1)
`
	_, err := Parse(strings.NewReader(src), "loop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "combinational loop")
}

func TestParseFileC17(t *testing.T) {
	c, err := ParseFile("testdata/c17.bench")
	require.NoError(t, err)

	assert.Equal(t, "c17", c.Name)
	assert.Len(t, c.Inputs(), 5)
	assert.Len(t, c.Outputs(), 2)
	assert.Len(t, c.Gates, 6)
	assert.True(t, c.NodeByName("G11").IsFanout(), "G11 feeds G16 and G19")
	assert.Equal(t, 3, c.NodeByName("G22").Driver.Depth)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/nope.bench")
	require.Error(t, err)
}

func TestParseFault(t *testing.T) {
	name, fault, err := ParseFault("net42/0")
	require.NoError(t, err)
	assert.Equal(t, "net42", name)
	assert.Equal(t, circuit.StuckAt0, fault)

	name, fault, err = ParseFault("G22/1")
	require.NoError(t, err)
	assert.Equal(t, "G22", name)
	assert.Equal(t, circuit.StuckAt1, fault)

	for _, bad := range []string{"net42", "net42/2", "/0", "net42/"} {
		_, _, err := ParseFault(bad)
		assert.Error(t, err, "descriptor %q", bad)
	}
}
