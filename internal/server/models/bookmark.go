package models

import "time"

// Bookmark links a user to an item; (UserID, ItemID) is unique.
type Bookmark struct {
	UserID    string
	ItemID    int64
	CreatedAt time.Time
}
