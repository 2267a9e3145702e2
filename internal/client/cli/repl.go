package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, page int) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context) error
}

const helpText = "Available commands: (l)ist [page], (n)ext, (p)rev, add, edit <id>, delete <id>, export, exit"

// runREPL starts a simple read-eval-print loop for the useradmin CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands and bad arguments are
// reported back to the user. The loop exits on EOF, when ctx is cancelled,
// or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	help               show available commands
//	list [page] | l    load a page (the current one by default)
//	next | n           next page
//	prev | p           previous page
//	add                create a user
//	edit <id>          edit a user
//	delete <id>        delete a user after confirmation
//	export             save the current page as users.xlsx
//	exit | quit        leave the program
//
// A handler error is logged and shown as a short message; the loop keeps
// running with the list state untouched.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, logger logging.Logger) {
	for {
		printlnFn(fmt.Sprintf("ua %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		if ctx.Err() != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			page, ok := pageArg(args)
			if !ok {
				printlnFn("Usage: list [page]")
				continue
			}
			cmdErr = a.List(ctx, page)

		case "n", "next":
			cmdErr = a.Next(ctx)

		case "p", "prev":
			cmdErr = a.Prev(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			id, ok := idArg(args)
			if !ok {
				printlnFn("Usage: edit <id>")
				continue
			}
			cmdErr = a.Edit(ctx, id)

		case "delete":
			id, ok := idArg(args)
			if !ok {
				printlnFn("Usage: delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, id)

		case "export":
			cmdErr = a.Export(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			logger.Error(ctx, "command failed", "command", cmd, "error", cmdErr)
			printlnFn(describe(cmdErr))
		}
	}
}

// pageArg returns the optional page argument; 0 means none was given.
func pageArg(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, true
	}
	if len(args) > 1 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func idArg(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
