package circuit

// LogicValue represents one of the five logic values used during test
// generation. D and D' carry a fault effect: they encode differing values
// between the good circuit and the faulty circuit.
type LogicValue int

const (
	X    LogicValue = iota // Unknown/unassigned
	Zero                   // Logic 0
	One                    // Logic 1
	D                      // Good circuit: 1, Faulty circuit: 0
	Dnot                   // Good circuit: 0, Faulty circuit: 1
)

// String returns a string representation of the logic value
func (v LogicValue) String() string {
	switch v {
	case X:
		return "X"
	case Zero:
		return "0"
	case One:
		return "1"
	case D:
		return "D"
	case Dnot:
		return "D'"
	default:
		return "?"
	}
}

// Invert returns the complement of the value. X inverts to itself,
// D and D' invert to each other.
func (v LogicValue) Invert() LogicValue {
	switch v {
	case Zero:
		return One
	case One:
		return Zero
	case D:
		return Dnot
	case Dnot:
		return D
	default:
		return X
	}
}

// IsFaultEffect returns true if the value carries a fault effect (D or D')
func (v LogicValue) IsFaultEffect() bool {
	return v == D || v == Dnot
}

// IsAssigned returns true if the value is definite (not X)
func (v LogicValue) IsAssigned() bool {
	return v != X
}

// GoodValue returns the value seen in the fault-free circuit
// (1 for D, 0 for D')
func (v LogicValue) GoodValue() LogicValue {
	switch v {
	case D:
		return One
	case Dnot:
		return Zero
	default:
		return v
	}
}

// FaultyValue returns the value seen in the faulty circuit
// (0 for D, 1 for D')
func (v LogicValue) FaultyValue() LogicValue {
	switch v {
	case D:
		return Zero
	case Dnot:
		return One
	default:
		return v
	}
}
