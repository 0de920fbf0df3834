// Package client contains the bookmarks CLI's building blocks for talking
// to the server and opening its local database.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Items, Bookmarks, AddBookmark, RemoveBookmark,
//     WhoAmI and Ping.
//  2. An HTTP+JSON implementation (see HTTPClient) that maps error replies
//     to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring a
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Error replies become *APIError values. They match, via errors.Is, the
// sentinels of internal/common (ErrDuplicateUsername, ErrAlreadyBookmarked,
// ...) plus ErrUnauthorized and ErrRateLimited defined here. Transport
// failures match ErrUnavailable.
package client
