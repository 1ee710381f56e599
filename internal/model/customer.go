package model

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is customer model entity
type Customer struct {
	ID    *string `json:"id"`
	Name  string  `json:"name"`
	Age   *int    `json:"age"`
	City  *string `json:"city"`
	Email string  `json:"-"`
}

// HasID reports whether customer carries the given object id, ignoring hex case
func (c *Customer) HasID(id string) bool {
	return c.ID != nil && strings.EqualFold(*c.ID, id)
}

// CustomerPatch holds new values for customer fields, nil means the field is left untouched
type CustomerPatch struct {
	Name *string
	Age  *int
	City *string
}

// IsEmpty reports whether patch doesn't change anything
func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.City == nil
}

// IsObjectID reports whether id is a 24 characters hex document identifier
func IsObjectID(id string) bool {
	return primitive.IsValidObjectID(id)
}
