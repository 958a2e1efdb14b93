package cmd

import (
	"fmt"
	"io"
	"time"
)

// timeNow is replaced in tests.
var timeNow = time.Now

func printSection(out io.Writer, title, sep string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s\n%s\n", title, sep)
	for _, l := range lines {
		fmt.Fprintf(out, "• %s\n", l)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
