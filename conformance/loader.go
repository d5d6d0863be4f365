package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestPath is the conformance suite directory relative to this package
const TestPath = "testdata"

// LoadedTest represents a test case with its source file path
type LoadedTest struct {
	File  string
	Suite string
	Test  TestCase
}

// LoadAllTests walks the suite directory and loads every test case
func LoadAllTests() ([]LoadedTest, error) {
	var loaded []LoadedTest

	err := filepath.Walk(TestPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		suite, err := loadSuite(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		relPath, _ := filepath.Rel(TestPath, path)
		for _, test := range suite.Tests {
			loaded = append(loaded, LoadedTest{
				File:  relPath,
				Suite: suite.Name,
				Test:  test,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func loadSuite(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, err
	}
	return &suite, nil
}
