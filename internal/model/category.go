package model

// Category is one of the fixed event source categories a subscriber can
// opt into. Rows are seeded at migration time.
type Category struct {
	Name string `gorm:"primaryKey;size:32"`
}
