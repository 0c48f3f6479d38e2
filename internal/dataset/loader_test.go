package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadItems(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	const in = `[
  {"id": "km-001", "task_type": "Temporal Reasoning", "question": "When?", "reference_answer": "Tuesday", "model_answer": "On Tuesday."},
  {"id": 42, "task_type": "Preference Recall", "question": "Which?", "reference_answer": 4, "model_answer": null}
]`
	if err := os.WriteFile(path, []byte(in), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	items, err := LoadItems(path)
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("LoadItems: got %d items", len(items))
	}

	if items[0].ID.String() != "km-001" {
		t.Fatalf("items[0].ID: got %q", items[0].ID)
	}
	if items[0].TaskType != "Temporal Reasoning" {
		t.Fatalf("items[0].TaskType: got %q", items[0].TaskType)
	}
	if items[1].ID.String() != "42" {
		t.Fatalf("items[1].ID: got %q", items[1].ID)
	}
	if items[1].ReferenceAnswer.String() != "4" {
		t.Fatalf("items[1].ReferenceAnswer: got %q", items[1].ReferenceAnswer)
	}
	if items[1].ModelAnswer.String() != "" {
		t.Fatalf("items[1].ModelAnswer: got %q", items[1].ModelAnswer)
	}
}

func TestLoadItemsMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadItems(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("LoadItems: expected error")
	}
}

func TestLoadItemsNotAnArray(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	if err := os.WriteFile(path, []byte(`{"id": 1}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadItems(path); err == nil {
		t.Fatal("LoadItems: expected error for non-array input")
	}
}

func TestItemIDRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{`"km-7"`, `"km-7"`},
		{`17`, `17`},
		{`17.5`, `17.5`},
		{`null`, `null`},
	}
	for _, tc := range cases {
		var id ItemID
		if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
			t.Fatalf("Unmarshal %q: %v", tc.in, err)
		}
		out, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("Marshal %q: %v", tc.in, err)
		}
		if string(out) != tc.want {
			t.Fatalf("round-trip %q: got %q want %q", tc.in, out, tc.want)
		}
	}

	var id ItemID
	if err := json.Unmarshal([]byte(`[1]`), &id); err == nil {
		t.Fatal("Unmarshal: expected error for array id")
	}
}
