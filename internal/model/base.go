// Package model holds the entities persisted by the repositories and the
// column types they share. Request payloads live next to each entity in
// its own subpackage.
package model

import "time"

// Base is embedded by every entity.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BaseWithUpdatedAt is embedded by entities that can change after creation.
type BaseWithUpdatedAt struct {
	Base
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
