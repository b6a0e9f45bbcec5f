// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package console is the line-oriented sink for benchmark
// output.
// Lines are dimmed on terminals and written verbatim
// anywhere else, so scripted runs can grep the output.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

var (
	mu  sync.Mutex
	out = termenv.NewOutput(os.Stderr)
)

// SetOutput redirects the console.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = termenv.NewOutput(w)
}

// Debug writes one formatted line.
// A trailing newline is appended when format lacks one.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	s := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	out.WriteString(out.String(s).Faint().String())
}
