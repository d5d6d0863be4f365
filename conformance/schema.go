package conformance

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase is a single program plus its expected outcome
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or reason string
	Program     string      `yaml:"program"`
	Stdin       string      `yaml:"stdin,omitempty"`
	StepLimit   int64       `yaml:"step_limit,omitempty"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what a run must produce. All set fields are
// checked; registers and stack values compare by rendered form.
// Output is a pointer so `output: ""` asserts a silent run while an
// absent key checks nothing.
type Expectation struct {
	Registers map[string]string `yaml:"registers,omitempty"`
	Output    *string           `yaml:"output,omitempty"`
	Fault     string            `yaml:"fault,omitempty"`
	FaultAt   *int              `yaml:"fault_at,omitempty"`
	Stack     []string          `yaml:"stack,omitempty"`
}

// IsSkipped returns whether this test should be skipped, with a reason
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
