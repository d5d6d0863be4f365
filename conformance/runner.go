package conformance

import (
	"bytes"
	"corral/builtins"
	"corral/mem"
	"corral/parser"
	"corral/vm"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// defaultStepLimit bounds suites that loop; any individual case can
// override it
const defaultStepLimit = 1_000_000

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests. Runs are deterministic: seeded
// randomness and a fixed clock.
type Runner struct {
	registry *builtins.Registry
}

// NewRunner creates a test runner
func NewRunner() *Runner {
	return &Runner{registry: builtins.NewRegistry()}
}

// RunAll executes every loaded test
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, 0, len(tests))
	for _, test := range tests {
		results = append(results, r.RunOne(test))
	}
	return results
}

// RunOne assembles and executes one test case against its expectation
func (r *Runner) RunOne(test LoadedTest) TestResult {
	result := TestResult{Test: test}

	if skipped, reason := test.Test.IsSkipped(); skipped {
		result.Skipped = true
		result.SkipReason = reason
		return result
	}

	prog, err := parser.Parse(test.Test.Program)
	if err != nil {
		result.Error = fmt.Errorf("assemble: %w", err)
		return result
	}

	var out bytes.Buffer
	machine := vm.NewVM(r.registry)
	machine.Out = &out
	machine.In = strings.NewReader(test.Test.Stdin)
	machine.Rand = rand.New(rand.NewSource(1))
	machine.Now = func() time.Time { return time.Unix(1700000000, 0) }
	machine.StepLimit = defaultStepLimit
	if test.Test.StepLimit > 0 {
		machine.StepLimit = test.Test.StepLimit
	}

	fault := machine.Run(prog)
	if err := check(test.Test.Expect, machine, fault, out.String()); err != nil {
		result.Error = err
		return result
	}
	result.Passed = true
	return result
}

func check(expect Expectation, machine *vm.VM, fault *vm.Fault, output string) error {
	if expect.Fault == "" {
		if fault != nil {
			return fmt.Errorf("unexpected fault: %v", fault)
		}
	} else {
		if fault == nil {
			return fmt.Errorf("expected %s fault, run completed", expect.Fault)
		}
		if fault.Code.String() != expect.Fault {
			return fmt.Errorf("expected %s fault, got %v", expect.Fault, fault)
		}
		if expect.FaultAt != nil && fault.PC != *expect.FaultAt {
			return fmt.Errorf("fault at instruction %d, want %d", fault.PC, *expect.FaultAt)
		}
	}

	for name, want := range expect.Registers {
		id, ok := mem.ParseRegister(name)
		if !ok {
			return fmt.Errorf("expectation names unknown register %q", name)
		}
		if got := machine.Mem.Registers.Get(id).String(); got != want {
			return fmt.Errorf("register %s = %s, want %s", name, got, want)
		}
	}

	if expect.Output != nil && output != *expect.Output {
		return fmt.Errorf("output %q, want %q", output, *expect.Output)
	}

	if expect.Stack != nil {
		values := machine.Mem.Stack.Values()
		if len(values) != len(expect.Stack) {
			return fmt.Errorf("stack depth %d, want %d", len(values), len(expect.Stack))
		}
		for i, want := range expect.Stack {
			if got := values[i].String(); got != want {
				return fmt.Errorf("stack[%d] = %s, want %s", i, got, want)
			}
		}
	}
	return nil
}

// Stats summarizes a conformance run
type Stats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats tallies results
func ComputeStats(results []TestResult) Stats {
	var s Stats
	for _, r := range results {
		s.Total++
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}
