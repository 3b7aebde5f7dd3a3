package app

import "strings"

const codeFence = "```"

// CleanJSONResponse strips a markdown code fence (optionally tagged with a
// language, e.g. ```json) from a model completion. The line after the opening
// fence is taken as a language tag only when it holds no '{' or '['. Text that
// does not start with a fence, or whose fence is never closed, is only trimmed.
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, codeFence) {
		return content
	}

	parts := strings.Split(content, codeFence)
	if len(parts) < 3 {
		return content
	}

	inner := parts[1]
	if tag, rest, ok := strings.Cut(inner, "\n"); ok && !strings.ContainsAny(tag, "{[") {
		inner = rest
	}
	return strings.TrimSpace(inner)
}
