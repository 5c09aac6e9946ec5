package extract

import "strings"

// locateJSON extracts the JSON payload from a model reply. Models regularly
// wrap output in markdown fences or prose despite instructions not to; fences
// are stripped first, then the payload is cut from the outermost bracket
// pair. The result is not guaranteed to be valid JSON.
func locateJSON(content string) string {
	if idx := strings.Index(content, "```json"); idx != -1 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
	} else if idx := strings.Index(content, "```"); idx != -1 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
	}

	content = strings.TrimSpace(content)

	objStart := strings.IndexByte(content, '{')
	arrStart := strings.IndexByte(content, '[')

	start, open := objStart, byte('{')
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, open = arrStart, '['
	}
	if start == -1 {
		return content
	}

	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	end := strings.LastIndexByte(content, closing)
	if end <= start {
		return content
	}

	return content[start : end+1]
}
