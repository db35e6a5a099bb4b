package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	ShowUser(ctx context.Context) error
	Rename(ctx context.Context) error
	Reroll(ctx context.Context) error
	SaveDocument(ctx context.Context) error
	ShowDocument(ctx context.Context) error
	ListAnnotations(ctx context.Context) error
	DeleteAnnotation(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
	Migrate(ctx context.Context) error
	ShowSettings(ctx context.Context) error
}

const helpText = "Available commands: user, rename, reroll, save, doc, " +
	"ann list, ann delete, export, import, migrate, settings, help, exit"

// runREPL reads a line per iteration, parses the first token (plus a
// subcommand for "ann") and dispatches to methods on 'a'. Unknown commands
// are reported back. The loop exits on scanner EOF or "exit"/"quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("annoti> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printlnFn(helpText)

		case "user":
			_ = a.ShowUser(ctx)

		case "rename":
			_ = a.Rename(ctx)

		case "reroll":
			_ = a.Reroll(ctx)

		case "save":
			_ = a.SaveDocument(ctx)

		case "doc":
			_ = a.ShowDocument(ctx)

		case "ann":
			sub := ""
			if len(parts) > 1 {
				sub = parts[1]
			}
			switch sub {
			case "list":
				_ = a.ListAnnotations(ctx)
			case "delete":
				_ = a.DeleteAnnotation(ctx)
			default:
				printlnFn("Usage: ann list | ann delete")
			}

		case "export":
			_ = a.Export(ctx)

		case "import":
			_ = a.Import(ctx)

		case "migrate":
			_ = a.Migrate(ctx)

		case "settings":
			_ = a.ShowSettings(ctx)

		case "exit", "quit":
			return

		default:
			printlnFn("Unknown command. Type 'help' for a list of commands.")
		}
	}
}
