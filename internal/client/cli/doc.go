// Package cli provides the interactive bookmarks command-line client.
//
// It wires configuration, the local SQLite mirror, API services and a REPL.
// A session saved by a previous run is restored on start; the mirror is
// refreshed from the server whenever the user is logged in.
//
// Commands:
//   - register, login, logout, whoami
//   - items [query]: browse the catalog
//   - bookmarks [query]: list own bookmarks, cached when offline
//   - add, remove, toggle <item id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
