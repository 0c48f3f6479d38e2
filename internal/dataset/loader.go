package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadItems reads a JSON array of evaluation items. Beyond being valid
// JSON, items are not schema-validated here; an unmapped task type is
// handled downstream as a skipped verdict.
func LoadItems(path string) ([]Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", path, err)
	}

	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("dataset: parse %q: %w", path, err)
	}
	return items, nil
}
