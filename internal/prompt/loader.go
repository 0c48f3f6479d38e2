package prompt

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// headerPattern marks the start of a template section: a "# type" header
// followed by one or more task-type names on the same line.
var headerPattern = regexp.MustCompile(`(?m)^# type\s+(.+)$`)

// aliasSeparator splits task-type names that share one template. Both the
// ASCII comma and the fullwidth enumeration comma appear in prompt files.
var aliasSeparator = regexp.MustCompile(`[、,]`)

// LoadFromFile parses a Markdown prompt file into a TemplateSet. Template
// bodies are not validated for placeholder tokens; a template missing a
// token renders it as literal text.
func LoadFromFile(path string) (*TemplateSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompt: read %q: %w", path, err)
	}
	return Parse(string(b)), nil
}

// Parse splits Markdown content into task-type-keyed templates.
func Parse(content string) *TemplateSet {
	out := &TemplateSet{templates: make(map[string]string)}

	matches := headerPattern.FindAllStringSubmatchIndex(content, -1)
	for i, m := range matches {
		names := strings.TrimSpace(content[m[2]:m[3]])

		bodyStart := m[1]
		bodyEnd := len(content)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		body := strings.TrimSpace(content[bodyStart:bodyEnd])

		for _, name := range aliasSeparator.Split(names, -1) {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := out.templates[name]; !ok {
				out.taskTypes = append(out.taskTypes, name)
			}
			out.templates[name] = body
		}
	}

	return out
}

// Load reads a prompt file and reports the number of loaded templates on w.
// Templates lacking every placeholder token get a warning but still load.
func Load(path string, w io.Writer) (*TemplateSet, error) {
	set, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	if w != nil {
		for _, taskType := range set.TaskTypes() {
			tmpl, _ := set.Get(taskType)
			if missing := MissingPlaceholders(tmpl); len(missing) == 3 {
				fmt.Fprintf(w, "Warning: template %q contains no placeholder tokens\n", taskType)
			}
		}
		fmt.Fprintf(w, "Loaded %d prompt templates from %s\n", set.Len(), path)
	}
	return set, nil
}

// MissingPlaceholders reports which of the three placeholder tokens a
// template body does not contain.
func MissingPlaceholders(template string) []string {
	var out []string
	for _, token := range []string{PlaceholderQuestion, PlaceholderReferenceAnswer, PlaceholderModelAnswer} {
		if !strings.Contains(template, token) {
			out = append(out, token)
		}
	}
	return out
}
