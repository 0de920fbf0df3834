package models

// Item is a catalog entry users can bookmark. The catalog is read-only for
// the API and written only by the seeder.
type Item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
