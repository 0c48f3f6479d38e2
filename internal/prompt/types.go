package prompt

// Placeholder tokens substituted into a grading template.
const (
	PlaceholderQuestion        = "{{question}}"
	PlaceholderReferenceAnswer = "{{reference_answer}}"
	PlaceholderModelAnswer     = "{{model_answer}}"
)

// TemplateSet maps task-type names to grading prompt templates. Multiple
// names in one header share a single template string.
type TemplateSet struct {
	templates map[string]string
	taskTypes []string // header order, aliases expanded
}

// Get returns the template for a task type. Matching is exact and
// case-sensitive.
func (s *TemplateSet) Get(taskType string) (string, bool) {
	if s == nil || s.templates == nil {
		return "", false
	}
	t, ok := s.templates[taskType]
	return t, ok
}

// Len returns the number of task-type entries.
func (s *TemplateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.templates)
}

// TaskTypes returns task-type names in the order they appear in the file.
func (s *TemplateSet) TaskTypes() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.taskTypes...)
}
