package llm

import (
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?s)^\\s*```(?:json|JSON|html|HTML|javascript|js|css)?\\s*\n?(.*?)\n?\\s*```\\s*$")

// CleanFences removes markdown code fence wrapping from a model response.
// Models wrap output in fences despite instructions not to; every consumer
// of raw model text strips them before use.
func CleanFences(s string) string {
	s = strings.TrimSpace(s)

	if matches := fencePattern.FindStringSubmatch(s); len(matches) > 1 {
		s = matches[1]
	}

	for _, prefix := range []string{"```json", "```JSON", "```html", "```javascript", "```js", "```css", "```"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

// ExtractJSON returns the first top-level JSON object or array embedded in a
// model response, after fence stripping. Returns the cleaned input unchanged
// when no JSON delimiters are found; the caller's json.Unmarshal reports the
// failure.
func ExtractJSON(s string) string {
	s = CleanFences(s)

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start := objStart
	var close byte = '}'
	if start == -1 || (arrStart != -1 && arrStart < objStart) {
		start = arrStart
		close = ']'
	}
	if start == -1 {
		return s
	}

	end := strings.LastIndexByte(s, close)
	if end <= start {
		return s
	}
	return s[start : end+1]
}
