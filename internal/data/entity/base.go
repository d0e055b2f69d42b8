package entity

// Base holds the autoincrement primary key shared by every table.
type Base struct {
	ID int64 `db:"id"`
}
