// Package testutil holds helpers shared by the terminal-output tests.
package testutil

import (
	"regexp"
	"strings"
)

// ansiRegex matches CSI escape sequences such as colour codes.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from s.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// PlainLines strips escape codes from s and splits it into lines with
// trailing blanks removed. A trailing empty line is dropped.
func PlainLines(s string) []string {
	lines := strings.Split(StripAnsiCodes(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
