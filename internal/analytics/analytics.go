package analytics

import (
	"sort"
	"time"

	"sales-report-service/internal/model"

	"gorm.io/gorm"
)

// BrandTotal is the summed sales amount of one brand.
type BrandTotal struct {
	BrandCode   string  `json:"brand_code"`
	TotalAmount float64 `json:"total_amount"`
}

// CustomerFilter narrows and pages a customer listing.
type CustomerFilter struct {
	Salesman     string
	CustomerCode string
	Offset       int
	Limit        int
}

// ListCustomers returns customers matching the filter, in storage order.
func ListCustomers(db *gorm.DB, f CustomerFilter) ([]model.Customer, error) {
	q := db.Model(&model.Customer{})
	if f.Salesman != "" {
		q = q.Where("salesman = ?", f.Salesman)
	}
	if f.CustomerCode != "" {
		q = q.Where("customer_code = ?", f.CustomerCode)
	}
	customers := []model.Customer{}
	err := q.Offset(f.Offset).Limit(f.Limit).Find(&customers).Error
	return customers, err
}

// ListBrandTotals sums sale amounts per brand across all matching lines,
// ranks brands by total descending, and pages over the ranked result. The
// aggregation runs in memory over the full result set so the page is a slice
// of the global ranking, not a storage-side limit.
func ListBrandTotals(db *gorm.DB, month *time.Time, offset, limit int) ([]BrandTotal, error) {
	q := db.Model(&model.BrandSale{}).Select("brand_code", "amount")
	if month != nil {
		q = q.Where("purchase_month = ?", *month)
	}
	var sales []model.BrandSale
	if err := q.Find(&sales).Error; err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	for _, s := range sales {
		sums[s.BrandCode] += s.Amount
	}
	totals := make([]BrandTotal, 0, len(sums))
	for code, amount := range sums {
		totals = append(totals, BrandTotal{BrandCode: code, TotalAmount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalAmount == totals[j].TotalAmount {
			return totals[i].BrandCode < totals[j].BrandCode
		}
		return totals[i].TotalAmount > totals[j].TotalAmount
	})

	if offset >= len(totals) {
		return []BrandTotal{}, nil
	}
	end := offset + limit
	if end > len(totals) {
		end = len(totals)
	}
	return totals[offset:end], nil
}

// ListBrandSales returns raw sale lines, paged by storage.
func ListBrandSales(db *gorm.DB, month *time.Time, offset, limit int) ([]model.BrandSale, error) {
	q := db.Model(&model.BrandSale{})
	if month != nil {
		q = q.Where("purchase_month = ?", *month)
	}
	sales := []model.BrandSale{}
	err := q.Offset(offset).Limit(limit).Find(&sales).Error
	return sales, err
}

// CustomerBrandSales returns every sale line of one customer, optionally
// scoped to a month. Not paginated.
func CustomerBrandSales(db *gorm.DB, customerID uint, month *time.Time) ([]model.BrandSale, error) {
	q := db.Where("customer_id = ?", customerID)
	if month != nil {
		q = q.Where("purchase_month = ?", *month)
	}
	sales := []model.BrandSale{}
	err := q.Find(&sales).Error
	return sales, err
}

// monthCustomerIDs returns the distinct customers with at least one sale line
// in the month.
func monthCustomerIDs(db *gorm.DB, month time.Time) ([]uint, error) {
	var ids []uint
	err := db.Model(&model.BrandSale{}).
		Where("purchase_month = ?", month).
		Distinct().
		Pluck("customer_id", &ids).Error
	return ids, err
}

// TotalSales sums Customer.total_bought across customers. With a month
// filter it restricts to customers active in that month but still sums their
// overall total_bought, not the month's sale amounts. That is the upstream
// reporting convention and is kept as is.
func TotalSales(db *gorm.DB, month *time.Time) (float64, error) {
	q := db.Model(&model.Customer{})
	if month != nil {
		ids, err := monthCustomerIDs(db, *month)
		if err != nil {
			return 0, err
		}
		if len(ids) == 0 {
			return 0, nil
		}
		q = q.Where("id IN ?", ids)
	}
	var totals []float64
	if err := q.Pluck("total_bought", &totals).Error; err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range totals {
		sum += t
	}
	return sum, nil
}

// TopCustomers returns the highest-spending customers by total_bought, up to
// limit. With a month filter only customers active in that month qualify.
func TopCustomers(db *gorm.DB, limit int, month *time.Time) ([]model.Customer, error) {
	q := db.Model(&model.Customer{})
	if month != nil {
		ids, err := monthCustomerIDs(db, *month)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []model.Customer{}, nil
		}
		q = q.Where("id IN ?", ids)
	}
	customers := []model.Customer{}
	err := q.Order("total_bought DESC").Limit(limit).Find(&customers).Error
	return customers, err
}

// TopBrands returns the highest-grossing brands by summed amount, up to
// limit. Unlike ListBrandTotals this aggregation runs storage-side; the two
// agree on the numbers for the same filter.
func TopBrands(db *gorm.DB, limit int, month *time.Time) ([]BrandTotal, error) {
	q := db.Model(&model.BrandSale{}).
		Select("brand_code, SUM(amount) AS total_amount")
	if month != nil {
		q = q.Where("purchase_month = ?", *month)
	}
	totals := []BrandTotal{}
	err := q.Group("brand_code").
		Order("total_amount DESC").
		Limit(limit).
		Scan(&totals).Error
	return totals, err
}
