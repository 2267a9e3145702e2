// Package cli provides the interactive useradmin command-line client.
//
// It wires configuration, the structured logger, the REST API client and the
// user list and user form controllers behind a small REPL. The App plays the
// part of the navigator between the two screens: the list opens the form for
// add and edit, and a successful submit brings the list back, reloaded from
// page 1.
//
// Commands:
//   - list [page], next, prev: browse users page by page
//   - add, edit <id>: open the user form
//   - delete <id>: delete a user after confirmation
//   - export: save the current page to an xlsx file
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// ctx is cancelled. See App and runREPL for details.
package cli
