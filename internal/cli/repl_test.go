package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) ShowUser(ctx context.Context) error     { return f.record("user") }
func (f *fakeExec) Rename(ctx context.Context) error       { return f.record("rename") }
func (f *fakeExec) Reroll(ctx context.Context) error       { return f.record("reroll") }
func (f *fakeExec) SaveDocument(ctx context.Context) error { return f.record("save") }
func (f *fakeExec) ShowDocument(ctx context.Context) error { return f.record("doc") }
func (f *fakeExec) ListAnnotations(ctx context.Context) error {
	return f.record("ann list")
}
func (f *fakeExec) DeleteAnnotation(ctx context.Context) error {
	return f.record("ann delete")
}
func (f *fakeExec) Export(ctx context.Context) error       { return f.record("export") }
func (f *fakeExec) Import(ctx context.Context) error       { return f.record("import") }
func (f *fakeExec) Migrate(ctx context.Context) error      { return f.record("migrate") }
func (f *fakeExec) ShowSettings(ctx context.Context) error { return f.record("settings") }

func runWith(t *testing.T, lines ...string) *fakeExec {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, sc)
	return exec
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := runWith(t,
		"help",
		"user",
		"save",
		"ann list",
		"ann delete",
		"export",
		"import",
		"migrate",
		"settings",
		"nonsense",
		"exit",
	)

	want := []string{"user", "save", "ann list", "ann delete",
		"export", "import", "migrate", "settings"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls = %+v, want %+v", exec.calls, want)
	}
	for i, name := range want {
		if exec.calls[i] != name {
			t.Errorf("call %d = %q, want %q", i, exec.calls[i], name)
		}
	}
}

func TestRunREPL_AnnWithoutSubcommand(t *testing.T) {
	exec := runWith(t, "ann", "ann bogus", "exit")
	if len(exec.calls) != 0 {
		t.Fatalf("no commands should have run, got %+v", exec.calls)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	exec := runWith(t, "user")
	if len(exec.calls) != 1 || exec.calls[0] != "user" {
		t.Fatalf("calls = %+v", exec.calls)
	}
}

func TestRunREPL_QuitAlias(t *testing.T) {
	exec := runWith(t, "quit", "user")
	if len(exec.calls) != 0 {
		t.Fatalf("quit should stop the loop, got %+v", exec.calls)
	}
}

func TestRunREPL_SkipsBlankLines(t *testing.T) {
	exec := runWith(t, "", "   ", "reroll", "exit")
	if len(exec.calls) != 1 || exec.calls[0] != "reroll" {
		t.Fatalf("calls = %+v", exec.calls)
	}
}
