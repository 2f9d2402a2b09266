package palette

import "fmt"

const promptTemplate = `Generate exactly %d HEX color codes that strongly match the theme: "%s".
Return only valid HEX codes, separated by commas. No text, no explanation.`

// BuildPrompt renders the request text for theme. The theme is inserted
// verbatim, including when it is empty.
func BuildPrompt(theme string, count int) string {
	return fmt.Sprintf(promptTemplate, count, theme)
}
