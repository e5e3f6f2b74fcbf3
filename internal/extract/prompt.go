package extract

import "strings"

// BuildSystemPrompt composes the fixed extraction instruction: the role,
// the field list, the defaulting policy, and the date format.
func BuildSystemPrompt() string {
	parts := []string{
		"Role: Act as a Document Analyst.",
		"Task: Identify the following details from the provided unstructured invoice content:",
		"invoice number, order date, due date, invoice from, invoice to, total amount, currency, tax,",
		"line items (service, quantity, unit price, unit tax, line price),",
		"customer name, email, phone, address, gst number, and format them as JSON.",
		"For fields having no data, use null for string fields and 1 as the default for numerical fields.",
		"Format all date fields as YYYY-MM-DD.",
		"Return ONLY JSON that matches the provided JSON Schema, with no markdown, no code fences, no explanation.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt wraps the extracted document text as the user message.
func BuildUserPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Invoice content:\n")
	b.WriteString(text)
	return b.String()
}
