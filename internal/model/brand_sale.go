package model

import (
	"time"
)

// BrandSale is one monthly sale line: the amount a customer bought of one
// brand in one month. PurchaseMonth is always the first day of the month and
// partitions the replacement semantics: re-uploading a month deletes and
// recreates the lines of every customer present in that upload, for that
// month only. Lines are never updated in place.
type BrandSale struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	BrandCode     string    `json:"brand_code" gorm:"type:varchar(128);index;not null"`
	CustomerID    uint      `json:"customer_id" gorm:"index;not null"`
	Customer      Customer  `json:"-" gorm:"foreignKey:CustomerID;references:ID"`
	Amount        float64   `json:"amount" gorm:"not null"`
	PurchaseMonth time.Time `json:"purchase_month" gorm:"index;not null"`
	CreatedAt     time.Time `json:"created_at"`
}
