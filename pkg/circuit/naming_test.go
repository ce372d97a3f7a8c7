package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBijectiveNodeNames(t *testing.T) {
	ng := NewNameGenerator()
	expected := map[int]string{
		1:   "A",
		2:   "B",
		26:  "Z",
		27:  "AA",
		28:  "AB",
		52:  "AZ",
		53:  "BA",
		702: "ZZ",
		703: "AAA",
	}

	names := make(map[int]string)
	for i := 1; i <= 703; i++ {
		names[i] = ng.NextNodeName()
	}
	for n, want := range expected {
		assert.Equal(t, want, names[n], "name #%d", n)
	}
}

func TestGateNamesCountPerType(t *testing.T) {
	ng := NewNameGenerator()
	assert.Equal(t, "and1", ng.NextGateName(AND))
	assert.Equal(t, "and2", ng.NextGateName(AND))
	assert.Equal(t, "xor1", ng.NextGateName(XOR))
	assert.Equal(t, "nand1", ng.NextGateName(NAND))
	assert.Equal(t, "and3", ng.NextGateName(AND))
	assert.Equal(t, "not1", ng.NextGateName(NOT))
	assert.Equal(t, "nor1", ng.NextGateName(NOR))
	assert.Equal(t, "or1", ng.NextGateName(OR))
	assert.Equal(t, "xnor1", ng.NextGateName(XNOR))
}

func TestGeneratorsAreIndependent(t *testing.T) {
	first, second := NewNameGenerator(), NewNameGenerator()
	first.NextNodeName()
	first.NextNodeName()
	assert.Equal(t, "A", second.NextNodeName(), "unrelated builds do not share counters")
}
