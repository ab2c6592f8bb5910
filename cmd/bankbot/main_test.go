package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer

	code := run([]string{"--version"}, &out)
	if code != 0 {
		t.Fatalf("run(--version) = %d; want 0", code)
	}
	if !strings.Contains(out.String(), "bankbot version") {
		t.Errorf("output = %q; want version string", out.String())
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer

	code := run([]string{"--help"}, &out)
	if code != 0 {
		t.Fatalf("run(--help) = %d; want 0", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("output = %q; want usage text", out.String())
	}
	if !strings.Contains(out.String(), "GEN_PROVIDER") {
		t.Errorf("output = %q; want environment docs", out.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var out bytes.Buffer

	if code := run([]string{"--bogus"}, &out); code != 2 {
		t.Fatalf("run(--bogus) = %d; want 2", code)
	}
}
