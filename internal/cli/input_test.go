package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestGetSimpleText_TrimsLine(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  /tmp/notes.md  \n"))

	got, err := GetSimpleText(r, "Document path:", &out)
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/notes.md" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(out.String(), "Document path:") {
		t.Errorf("prompt missing from output: %q", out.String())
	}
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no-newline"))

	got, err := GetSimpleText(r, "Value:", &out)
	if err != nil {
		t.Fatal(err)
	}
	if got != "no-newline" {
		t.Errorf("got %q", got)
	}
}

func TestGetSimpleText_EmptyInputErrors(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	if _, err := GetSimpleText(r, "Value:", &out); err == nil {
		t.Error("expected an error on immediate EOF")
	}
}
