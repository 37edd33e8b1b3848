package entities

import "time"

// Customer owns orders. Email is unique across customers.
//
// Storage model (DynamoDB):
//   - PK: id
//   - email uniqueness guarded by a lock item (id = "EMAIL#<email>")

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
