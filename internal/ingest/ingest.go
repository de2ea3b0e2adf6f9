package ingest

import (
	"time"

	"sales-report-service/internal/model"
	"sales-report-service/internal/report"
	"sales-report-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IngestionError wraps a storage failure during an upload. Customer rows
// committed before the failure stay committed; the caller sees an opaque
// failure and the detail goes to the log.
type IngestionError struct {
	Err error
}

func (e *IngestionError) Error() string {
	return "ingestion failed: " + e.Err.Error()
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// Result reports what an upload changed.
type Result struct {
	CreatedCustomers int
	CreatedSales     int
	SkippedRows      int
}

// Engine reconciles a parsed monthly report into the customer and brand-sale
// tables. Each customer row commits in its own transaction, so a failure
// partway through a file leaves the rows before it durable.
type Engine struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB) *Engine {
	return &Engine{db: db, log: logger.GetLogger()}
}

// Ingest merges the dataset into storage for the given month (already
// normalized to the first of the month).
//
// Existing brand-sale lines for (month, customer present in the file) are
// deleted up front, then every qualifying row upserts its customer and
// recreates its lines, so re-uploading a month replaces that month's data
// for exactly the customers in the file. Customers absent from the file, and
// other months of the customers in it, are untouched.
func (e *Engine) Ingest(month time.Time, ds *report.Dataset) (Result, error) {
	var res Result

	schema, err := report.NewSchema(ds.Columns)
	if err != nil {
		return res, err
	}

	codes := make([]string, 0, len(ds.Rows))
	seen := make(map[string]struct{}, len(ds.Rows))
	for _, row := range ds.Rows {
		code := schema.CustomerCode(row)
		if !report.IsCustomerCode(code) {
			res.SkippedRows++
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		e.log.Info("upload contained no qualifying rows",
			zap.Time("month", month),
			zap.Int("skipped_rows", res.SkippedRows))
		return res, nil
	}

	var existing []model.Customer
	if err := e.db.Where("customer_code IN ?", codes).Find(&existing).Error; err != nil {
		return res, &IngestionError{Err: err}
	}
	byCode := make(map[string]*model.Customer, len(existing))
	ids := make([]uint, 0, len(existing))
	for i := range existing {
		c := &existing[i]
		byCode[c.CustomerCode] = c
		ids = append(ids, c.ID)
	}

	// Replacement step: drop the month's lines for every customer matched in
	// this file before inserting the new ones.
	if len(ids) > 0 {
		if err := e.db.Where("purchase_month = ? AND customer_id IN ?", month, ids).
			Delete(&model.BrandSale{}).Error; err != nil {
			return res, &IngestionError{Err: err}
		}
	}

	for _, row := range ds.Rows {
		code := schema.CustomerCode(row)
		if !report.IsCustomerCode(code) {
			continue
		}
		if err := e.db.Transaction(func(tx *gorm.DB) error {
			return e.ingestRow(tx, schema, row, code, month, byCode, &res)
		}); err != nil {
			e.log.Error("upload aborted, earlier rows remain committed",
				zap.Time("month", month),
				zap.String("customer_code", code),
				zap.Error(err))
			return res, &IngestionError{Err: err}
		}
	}

	e.log.Info("upload ingested",
		zap.Time("month", month),
		zap.Int("created_customers", res.CreatedCustomers),
		zap.Int("created_sales", res.CreatedSales),
		zap.Int("skipped_rows", res.SkippedRows))
	return res, nil
}

// ingestRow upserts one customer and recreates its brand-sale lines for the
// month. Fields are only overwritten when the source cell is present; a row
// with a numeric code and nothing else still creates a customer with zeroed
// defaults.
func (e *Engine) ingestRow(tx *gorm.DB, schema *report.Schema, row []string, code string, month time.Time, byCode map[string]*model.Customer, res *Result) error {
	cust := byCode[code]
	if cust == nil {
		cust = &model.Customer{CustomerCode: code}
		if s, ok := schema.Salesman(row); ok {
			cust.Salesman = &s
		}
		if v, ok := schema.Total(row); ok {
			cust.TotalBought = v
		}
		if n, ok := schema.BrandCount(row); ok {
			cust.BrandCount = n
		}
		if err := tx.Create(cust).Error; err != nil {
			return err
		}
		res.CreatedCustomers++
		byCode[code] = cust
	} else {
		if s, ok := schema.Salesman(row); ok {
			cust.Salesman = &s
		}
		if v, ok := schema.Total(row); ok {
			cust.TotalBought = v
		}
		if n, ok := schema.BrandCount(row); ok {
			cust.BrandCount = n
		}
		if err := tx.Save(cust).Error; err != nil {
			return err
		}
	}

	for _, col := range schema.Brands {
		amount, ok := schema.Amount(row, col)
		if !ok || amount <= 0 {
			continue
		}
		sale := model.BrandSale{
			BrandCode:     col.Code,
			CustomerID:    cust.ID,
			Amount:        amount,
			PurchaseMonth: month,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		res.CreatedSales++
	}
	return nil
}
