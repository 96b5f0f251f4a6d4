package migrate

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/upshift/internal/messages"
)

// DefaultDiffMaxLines is the default maximum number of diff lines shown per file.
const DefaultDiffMaxLines = 40

// DiffPreview is a unified diff of one file's pending rewrite.
type DiffPreview struct {
	UnifiedDiff string `json:"unified_diff" yaml:"unified_diff"`
	Truncated   bool   `json:"truncated" yaml:"truncated"`
}

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

func buildDiffPreview(relPath string, before []byte, after []byte, maxLines int) *DiffPreview {
	rendered, truncated := renderTruncatedUnifiedDiff("a/"+relPath, "b/"+relPath, string(before), string(after), maxLines)
	return &DiffPreview{UnifiedDiff: rendered, Truncated: truncated}
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := lines[:limit]
	truncated = append(truncated, fmt.Sprintf(messages.DiffTruncatedFmt, limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
