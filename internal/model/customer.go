package model

import (
	"time"
)

// Customer is the master record for a customer appearing in monthly reports.
// customer_code is the natural key used for reconciliation during uploads;
// total_bought and brand_count hold the latest values reported for the
// customer, overwritten on each upload rather than derived from sale lines.
type Customer struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	CustomerCode string    `json:"customer_code" gorm:"type:varchar(64);index;not null"`
	Salesman     *string   `json:"salesman" gorm:"type:varchar(255)"`
	TotalBought  float64   `json:"total_bought" gorm:"default:0"`
	BrandCount   int       `json:"brand_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
