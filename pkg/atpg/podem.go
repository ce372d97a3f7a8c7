// Package atpg implements a PODEM-style backtracking test generator on top
// of the circuit core. Decisions are made only on primary inputs; after each
// assignment the whole circuit is re-simulated forward, so no backward
// implication machinery is needed.
package atpg

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/larosek/podem-atpg/pkg/circuit"
)

// ErrUntestable is returned when the search space is exhausted without
// finding a test: the fault is redundant.
var ErrUntestable = errors.New("fault is untestable")

// ErrAborted is returned when the backtrack limit is hit before the search
// space is exhausted.
var ErrAborted = errors.New("backtrack limit reached")

// DefaultBacktrackLimit bounds the search per fault. Combinational circuits
// the tool targets are small, so hitting it almost always means redundancy
// plus an unlucky decision order.
const DefaultBacktrackLimit = 10000

// Stats collects counters about test generation
type Stats struct {
	Decisions   int           // Primary-input assignments tried
	Backtracks  int           // Decisions reverted
	Simulations int           // Full forward simulation passes
	TestsFound  int           // Faults with a generated test
	Untestable  int           // Faults proven redundant
	Aborted     int           // Faults abandoned at the backtrack limit
	Duration    time.Duration // Total time spent
}

// decision is one entry of the PODEM decision stack
type decision struct {
	input   *circuit.Node
	value   circuit.LogicValue
	flipped bool
}

// Podem drives the test generation search over one circuit
type Podem struct {
	Circuit        *circuit.Circuit
	Logger         *slog.Logger
	Stats          Stats
	BacktrackLimit int

	decisions []*decision
}

// New creates a PODEM instance for the circuit and computes the
// controllability scores its heuristics rely on.
func New(c *circuit.Circuit, logger *slog.Logger) *Podem {
	if logger == nil {
		logger = slog.Default()
	}
	c.ComputeControllability()
	return &Podem{
		Circuit:        c,
		Logger:         logger,
		BacktrackLimit: DefaultBacktrackLimit,
	}
}

// FindTest searches for an input vector that detects the given stuck-at
// fault on site. On success it returns the primary-input assignment (entries
// may be X: those inputs are don't-cares). ErrUntestable means the fault is
// redundant; ErrAborted means the backtrack limit was reached first.
func (p *Podem) FindTest(site *circuit.Node, fault circuit.Fault) (map[string]circuit.LogicValue, error) {
	start := time.Now()
	p.Logger.Info("test generation started", "site", site.Name, "fault", fault.String())

	p.Circuit.ResetValues()
	p.decisions = p.decisions[:0]
	site.AttachFault(fault, false)
	defer func() {
		site.DetachFault()
		p.Circuit.ResetValues()
		p.Stats.Duration += time.Since(start)
	}()

	backtracksBefore := p.Stats.Backtracks
	for {
		if p.Stats.Backtracks-backtracksBefore > p.BacktrackLimit {
			p.Stats.Aborted++
			p.Logger.Warn("search aborted", "site", site.Name, "fault", fault.String(),
				"backtracks", p.Stats.Backtracks-backtracksBefore)
			return nil, fmt.Errorf("%s %s: %w", site.Name, fault, ErrAborted)
		}

		p.Circuit.Simulate()
		p.Stats.Simulations++

		if p.Circuit.TestDetected() {
			// Report the good-circuit stimulus: a faulty primary input holds
			// D or D' after masking, but the tester applies 1 or 0.
			vector := make(map[string]circuit.LogicValue)
			for name, value := range p.Circuit.InputVector() {
				vector[name] = value.GoodValue()
			}
			p.Stats.TestsFound++
			p.Logger.Info("test found", "site", site.Name, "fault", fault.String(),
				"decisions", len(p.decisions))
			return vector, nil
		}

		obj, viable := p.nextObjective(site)
		if viable {
			input, value := p.backtrace(obj)
			if input != nil {
				p.decisions = append(p.decisions, &decision{input: input, value: value})
				if err := input.Assign(value); err != nil {
					return nil, err
				}
				p.Stats.Decisions++
				p.Logger.Debug("decision", "input", input.Name, "value", value.String(),
					"depth", len(p.decisions))
				continue
			}
		}

		if !p.backtrack() {
			p.Stats.Untestable++
			p.Logger.Info("fault untestable", "site", site.Name, "fault", fault.String())
			return nil, fmt.Errorf("%s %s: %w", site.Name, fault, ErrUntestable)
		}
	}
}

// backtrack reverts the most recent decision that still has an untried
// value, flipping it, and pops decisions that have been tried both ways.
// Returns false once the stack is empty, i.e. the search space is exhausted.
func (p *Podem) backtrack() bool {
	for len(p.decisions) > 0 {
		d := p.decisions[len(p.decisions)-1]
		if !d.flipped {
			d.flipped = true
			d.value = d.value.Invert()
			// Assign cannot fail here: d.value is 0 or 1.
			if err := d.input.Assign(d.value); err == nil {
				p.Stats.Backtracks++
				p.Logger.Debug("backtrack", "input", d.input.Name, "value", d.value.String(),
					"depth", len(p.decisions))
				return true
			}
		}
		d.input.Reset()
		p.decisions = p.decisions[:len(p.decisions)-1]
	}
	return false
}

// GenerateAll runs FindTest for both stuck-at faults on every node and
// returns the detected ones keyed "node/0" or "node/1". Untestable and
// aborted faults are counted in Stats but produce no entry.
func (p *Podem) GenerateAll() map[string]map[string]circuit.LogicValue {
	start := time.Now()
	tests := make(map[string]map[string]circuit.LogicValue)
	faults := 0

	for _, node := range p.Circuit.Nodes {
		for _, fault := range []circuit.Fault{circuit.StuckAt0, circuit.StuckAt1} {
			faults++
			key := fmt.Sprintf("%s/%d", node.Name, fault-circuit.StuckAt0)
			vector, err := p.FindTest(node, fault)
			if err != nil {
				continue
			}
			tests[key] = vector
		}
	}

	p.Logger.Info("test generation finished",
		"faults", faults,
		"detected", len(tests),
		"coverage", fmt.Sprintf("%.2f%%", float64(len(tests))/float64(faults)*100),
		"elapsed", time.Since(start))
	return tests
}
