package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONFileName is the name of the machine-readable report in the output
// directory.
const JSONFileName = "report.json"

// Document is the machine-readable form of a run.
type Document struct {
	Summary  Summary          `json:"summary"`
	Fixtures []*FixtureReport `json:"fixtures"`
}

// Document snapshots the run.
func (a *Aggregator) Document() Document {
	s := a.Summary()
	a.mu.RLock()
	defer a.mu.RUnlock()

	fixtures := make([]*FixtureReport, len(a.fixtures))
	for i, fr := range a.fixtures {
		cp := *fr
		cp.Tests = make([]*TestReport, len(fr.Tests))
		for j, r := range fr.Tests {
			tr := *r
			if r.Failure != nil {
				f := *r.Failure
				tr.Failure = &f
			}
			cp.Tests[j] = &tr
		}
		fixtures[i] = &cp
	}
	return Document{Summary: s, Fixtures: fixtures}
}

// WriteJSON writes report.json to the output directory and returns its path.
func (a *Aggregator) WriteJSON() (string, error) {
	if a.opts.OutputDir == "" {
		return "", fmt.Errorf("no output directory configured")
	}

	jsonData, err := json.MarshalIndent(a.Document(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	fullPath := filepath.Join(a.opts.OutputDir, JSONFileName)
	if err := os.WriteFile(fullPath, jsonData, 0644); err != nil {
		return "", a.writeFailed(fmt.Errorf("failed to write report file: %w", err))
	}
	return fullPath, nil
}
