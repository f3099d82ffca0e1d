package ui

import (
	"fmt"
	"strings"
)

// printInsightWrapped formats and prints insight text preserving structure.
func printInsightWrapped(text string, width int) {
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Println()
			continue
		}

		prefix, content, contentWidth, isHeader := parseInsightLine(trimmed, width)
		if isHeader {
			fmt.Println()
			fmt.Println(formatHeader("  " + content))
			continue
		}

		wrapAndPrint(content, prefix, contentWidth)
	}
}

// parseInsightLine parses a line and returns formatting info.
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case strings.HasPrefix(trimmed, ">"):
		content = strings.TrimPrefix(trimmed, "> ")
		prefix = "  │ "
		contentWidth = width - 4
	}

	return prefix, content, contentWidth, isHeader
}

// wrapAndPrint wraps text to width and prints with the given prefix.
func wrapAndPrint(text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	continuation := strings.Repeat(" ", len(prefix))
	line := ""
	first := true

	flush := func() {
		p := continuation
		if first {
			p = prefix
			first = false
		}
		fmt.Println(formatInsight(p + line))
	}

	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			flush()
			line = word
		}
	}
	if line != "" {
		flush()
	}
}

// stripMarkdownCodeBlocks removes ```...``` fences from text.
func stripMarkdownCodeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
