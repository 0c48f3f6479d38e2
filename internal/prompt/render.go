package prompt

import "strings"

// Render substitutes the placeholder tokens in a template with the item's
// question, reference answer, and model answer. Substitution is literal;
// tokens absent from the template are left untouched and empty values
// substitute as empty strings.
func Render(template, question, referenceAnswer, modelAnswer string) string {
	r := strings.NewReplacer(
		PlaceholderQuestion, question,
		PlaceholderReferenceAnswer, referenceAnswer,
		PlaceholderModelAnswer, modelAnswer,
	)
	return r.Replace(template)
}
