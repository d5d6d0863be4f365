package conformance

import (
	"testing"
)

func TestConformance(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("failed to load suites: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("no tests loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)

	fileGroups := make(map[string][]TestResult)
	for _, result := range results {
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	for file, fileResults := range fileGroups {
		t.Run(file, func(t *testing.T) {
			for _, result := range fileResults {
				result := result
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if result.Skipped {
						t.Skipf("skipped: %s", result.SkipReason)
					}
					if !result.Passed {
						t.Errorf("%v", result.Error)
					}
				})
			}
		})
	}

	stats := ComputeStats(results)
	t.Logf("conformance: %d total, %d passed, %d failed, %d skipped",
		stats.Total, stats.Passed, stats.Failed, stats.Skipped)
}
