// Package models defines the client-side data shapes: catalog items as the
// server returns them and the login session.
package models

// Item is a catalog entry; bookmarks are items too.
type Item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
