// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"testing"
)

type testDriver struct{ name string }

func (d *testDriver) Open() (API, error) { return nil, ErrNoDevice }
func (d *testDriver) Name() string       { return d.name }
func (d *testDriver) Close()             {}

func TestRegister(t *testing.T) {
	n := len(Drivers())
	d := testDriver{name: "test driver"}
	Register(&d)
	if x := len(Drivers()); x != n+1 {
		t.Fatalf("len(Drivers())\nhave %v\nwant %v", x, n+1)
	}
	if x := ForName("test driver"); x != &d {
		t.Fatalf("ForName\nhave %v\nwant %v", x, &d)
	}
	if x := ForName("no such driver"); x != nil {
		t.Fatalf("ForName\nhave %v\nwant nil", x)
	}

	// Same name replaces.
	d2 := testDriver{name: "test driver"}
	Register(&d2)
	if x := len(Drivers()); x != n+1 {
		t.Fatalf("len(Drivers()) after replace\nhave %v\nwant %v", x, n+1)
	}
	if x := ForName("test driver"); x != &d2 {
		t.Fatalf("ForName after replace\nhave %v\nwant %v", x, &d2)
	}
}

func TestTestID(t *testing.T) {
	cases := []struct {
		id   TestID
		name string
		cat  Category
	}{
		{StreamingVB, "StreamingVB", CatStreaming},
		{CubesUniform, "CubesUniform", CatCubes},
		{CubesDynamicBuffer, "CubesDynamicBuffer", CatCubes},
	}
	for _, c := range cases {
		if s := c.id.String(); s != c.name {
			t.Fatalf("TestID.String\nhave %v\nwant %v", s, c.name)
		}
		if x := c.id.Category(); x != c.cat {
			t.Fatalf("TestID.Category(%v)\nhave %v\nwant %v", c.id, x, c.cat)
		}
	}
}

// Compile-time checks that the workload contracts refine
// TestCase.
var (
	_ TestCase = StreamingTest(nil)
	_ TestCase = CubesTest(nil)
)
