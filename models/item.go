package models

// Item is the minimal example resource demonstrating the CRUD plumbing.
// Names are globally unique, enforced by the database.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "example_items"
}
