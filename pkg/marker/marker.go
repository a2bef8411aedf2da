// Package marker renders and recognises the header that identifies a
// managed copy.
//
// A managed copy is the source content prefixed by a few comment lines. The
// first of them carries Token; containment of Token anywhere in a file is the
// only signal used to decide that agentlink owns it. Changing Token orphans
// every copy written with the previous value.
package marker

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Token is the fixed ownership marker embedded in every managed copy
const Token = "agentlink:managed-copy:v1"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	notice       = "This file is auto-managed. Do not edit manually."
)

// Header returns the header block for a copy of sourceRel, including the
// trailing blank line that separates it from the content.
func Header(sourceRel string) string {
	var b strings.Builder
	for _, line := range []string{
		Token,
		notice,
		"Source: " + filepath.ToSlash(sourceRel),
	} {
		fmt.Fprintf(&b, "%s %s %s\n", commentOpen, line, commentClose)
	}
	b.WriteString("\n")
	return b.String()
}

// Render builds the full managed copy content
func Render(sourceRel string, content []byte) []byte {
	header := Header(sourceRel)
	out := make([]byte, 0, len(header)+len(content))
	out = append(out, header...)
	return append(out, content...)
}

// IsManaged reports whether content carries the marker
func IsManaged(content []byte) bool {
	return strings.Contains(string(content), Token)
}

// Strip returns the content that follows the managed header. ok is false when
// content does not start with a header line carrying the marker.
func Strip(content []byte) (body []byte, ok bool) {
	text := string(content)
	firstLine, _, _ := strings.Cut(text, "\n")
	if !strings.Contains(firstLine, Token) {
		return content, false
	}
	// Header lines are never blank, so the first empty line terminates it.
	idx := strings.Index(text, "\n\n")
	if idx < 0 {
		return nil, true
	}
	return []byte(text[idx+2:]), true
}

// SourceOf returns the provenance path recorded in a managed header
func SourceOf(content []byte) (string, bool) {
	if !IsManaged(content) {
		return "", false
	}
	const prefix = commentOpen + " Source: "
	for _, line := range strings.Split(string(content), "\n") {
		if line == "" {
			break
		}
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSuffix(strings.TrimPrefix(line, prefix), " "+commentClose), true
		}
	}
	return "", false
}
