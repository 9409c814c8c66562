package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// saveResults writes v as indented JSON to path.
func saveResults(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// mustSaveResults honors --results-path; it does nothing when the flag is empty.
func mustSaveResults(v any) {
	if resultsPath == "" {
		return
	}
	if err := saveResults(resultsPath, v); err != nil {
		logrus.Fatalf("%v", err)
	}
	logrus.Infof("Results written to %s", resultsPath)
}
