// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package console

import (
	"os"
	"strings"
	"testing"
)

func TestDebug(t *testing.T) {
	var b strings.Builder
	SetOutput(&b)
	defer SetOutput(os.Stderr)

	Debug("Initializing %s backend", "GL")
	Debug("FPS: %g\n", 62.5)

	have := b.String()
	want := "Initializing GL backend\nFPS: 62.5\n"
	if have != want {
		t.Fatalf("Debug output\nhave %q\nwant %q", have, want)
	}
}
