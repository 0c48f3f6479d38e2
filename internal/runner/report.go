package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// WriteReport persists a report as indented JSON. HTML escaping is off so
// non-ASCII question and answer text survives verbatim.
func WriteReport(path string, report *Report) error {
	if report == nil {
		return errors.New("runner: nil report")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("runner: create %q: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		_ = f.Close()
		return fmt.Errorf("runner: write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("runner: close %q: %w", path, err)
	}
	return nil
}

// ReadReport loads a previously written report.
func ReadReport(path string) (*Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runner: read %q: %w", path, err)
	}

	var report Report
	if err := json.Unmarshal(b, &report); err != nil {
		return nil, fmt.Errorf("runner: parse %q: %w", path, err)
	}
	return &report, nil
}
