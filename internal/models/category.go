package models

import "time"

// Category is a node in the category tree. ParentID is empty for roots.
type Category struct {
	CategoryID  string    `json:"category_id" bson:"category_id"`
	Name        string    `json:"name" bson:"name"`
	ParentID    string    `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Order       int       `json:"order" bson:"order"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
