// Package pamfile edits the block managed by the helper inside a PAM service file.
//
// The block is fenced by two exact marker lines and always sits right after the first line of
// the file, which is the "#%PAM-1.0" header in well formed files:
//
//	#%PAM-1.0
//	# BEGIN xfprintd-gui
//	auth    sufficient  pam_fprintd.so
//	# END xfprintd-gui
//	auth    include     system-auth
//
// All functions here are pure text transformations.
package pamfile

import (
	"strings"

	"github.com/xerolinux/xfprintd-gui/internal/consts"
)

// Block returns patch fenced by the begin and end markers, newline terminated.
func Block(patch string) string {
	return consts.BeginMarker + "\n" + patch + "\n" + consts.EndMarker + "\n"
}

// Strip removes every fenced block, markers included, from content.
// Lines outside of blocks are kept verbatim and newline terminated.
// A begin marker without matching end drops everything up to the end of content.
func Strip(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	var inside bool
	for _, line := range lines(content) {
		switch strings.TrimSpace(line) {
		case consts.BeginMarker:
			inside = true
			continue
		case consts.EndMarker:
			inside = false
			continue
		}
		if inside {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// InsertAfterHeader inserts patch as a fenced block right after the first line of content.
// Empty content gets a PAM header first.
func InsertAfterHeader(content, patch string) string {
	block := Block(patch)

	if content == "" {
		return consts.PAMHeader + "\n" + block
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	ls := lines(content)

	var b strings.Builder
	b.Grow(len(content) + len(block))

	b.WriteString(ls[0])
	b.WriteByte('\n')
	b.WriteString(block)
	for _, l := range ls[1:] {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	return b.String()
}

// HasBlock reports whether the begin marker appears anywhere in content.
// This is a presence test only, the block structure is not validated.
func HasBlock(content string) bool {
	return strings.Contains(content, consts.BeginMarker)
}

// lines splits content on line endings. A trailing line ending does not produce an empty last
// line and "\r\n" endings are handled as "\n".
func lines(content string) []string {
	if content == "" {
		return nil
	}
	ls := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, l := range ls {
		ls[i] = strings.TrimSuffix(l, "\r")
	}
	return ls
}
