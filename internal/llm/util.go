package llm

import "strings"

// CleanJSONBlock removes markdown code fences and any conversational
// preamble or trailer around a JSON object or array.
func CleanJSONBlock(text string) string {
	text = stripFence(text)
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return text[start:]
	}
	return text[start : end+1]
}

// CleanText normalizes a plain-text completion: code fences, surrounding
// quotes and a leading "Rewritten:" style label are removed.
func CleanText(text string) string {
	text = stripFence(text)
	if i := strings.Index(text, ":"); i > 0 && i < 20 && !strings.ContainsAny(text[:i], " \n") {
		text = strings.TrimSpace(text[i+1:])
	}
	for _, q := range []string{`"`, "'", "“"} {
		closing := q
		if q == "“" {
			closing = "”"
		}
		if strings.HasPrefix(text, q) && strings.HasSuffix(text, closing) && len(text) > len(q)+len(closing) {
			text = text[len(q) : len(text)-len(closing)]
			break
		}
	}
	return strings.TrimSpace(text)
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// skip a language identifier on the fence line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.ContainsAny(first, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
