package prompt

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	t.Parallel()

	const tmpl = "Q: {{question}}\nRef: {{reference_answer}}\nAns: {{model_answer}}"
	got := Render(tmpl, "What is 2+2?", "4", "The answer is 4.")

	want := "Q: What is 2+2?\nRef: 4\nAns: The answer is 4."
	if got != want {
		t.Fatalf("Render: got %q want %q", got, want)
	}
	if strings.Contains(got, "{{") {
		t.Fatalf("Render: residual placeholder in %q", got)
	}
}

func TestRenderEmptyValues(t *testing.T) {
	t.Parallel()

	got := Render("[{{question}}][{{reference_answer}}][{{model_answer}}]", "", "", "")
	if got != "[][][]" {
		t.Fatalf("Render: got %q", got)
	}
}

func TestRenderLeavesUnknownTokens(t *testing.T) {
	t.Parallel()

	got := Render("{{question}} {{rubric}}", "q", "r", "m")
	if got != "q {{rubric}}" {
		t.Fatalf("Render: got %q", got)
	}
}

func TestRenderNonASCII(t *testing.T) {
	t.Parallel()

	got := Render("答案：{{model_answer}}", "", "", "四")
	if got != "答案：四" {
		t.Fatalf("Render: got %q", got)
	}
}
