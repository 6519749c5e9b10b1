package entity

import "time"

type Tour struct {
	TourID    string    `json:"tour_id" db:"tour_id"`
	TenantID  string    `json:"tenant_id" db:"tenant_id"`
	Title     string    `json:"title" db:"title"`
	BasePrice float64   `json:"base_price" db:"base_price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
