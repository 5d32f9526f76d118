package model

import "time"

// Unit is an organizational unit. Name and code are unique.
type Unit struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
