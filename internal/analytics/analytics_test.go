package analytics

import (
	"math"
	"testing"
	"time"

	"sales-report-service/internal/ingest"
	"sales-report-service/internal/model"
	"sales-report-service/internal/report"
	"sales-report-service/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func monthKey(t *testing.T, s string) time.Time {
	t.Helper()
	m, err := report.ParseMonth(s)
	if err != nil {
		t.Fatalf("ParseMonth(%q): %v", s, err)
	}
	return m
}

// seedTwoMonths ingests a small fixed history:
//
//	january:  1001 (Alice)   BrandA 300, BrandB 200, total 500
//	          1002 (Bob)     BrandA 120, total 120
//	february: 1001 (Alice)   BrandC 100, total 600
//	          1003 (Carol)   BrandB 50,  total 50
func seedTwoMonths(t *testing.T, db *gorm.DB) (jan, feb time.Time) {
	t.Helper()
	jan = monthKey(t, "2024-01")
	feb = monthKey(t, "2024-02")

	eng := ingest.New(db)
	if _, err := eng.Ingest(jan, &report.Dataset{
		Columns: []string{"CustomerCode", "Salesman", "Total", "BrandA", "BrandB", "BrandCount"},
		Rows: [][]string{
			{"1001", "Alice", "500", "300", "200", "2"},
			{"1002", "Bob", "120", "120", "", "1"},
		},
	}); err != nil {
		t.Fatalf("seed january: %v", err)
	}
	if _, err := eng.Ingest(feb, &report.Dataset{
		Columns: []string{"CustomerCode", "Salesman", "Total", "BrandB", "BrandC", "BrandCount"},
		Rows: [][]string{
			{"1001", "Alice", "600", "", "100", "1"},
			{"1003", "Carol", "50", "50", "", "1"},
		},
	}); err != nil {
		t.Fatalf("seed february: %v", err)
	}
	return jan, feb
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTopBrandsMatchesListBrandTotals(t *testing.T) {
	db := newTestDB(t)
	jan, _ := seedTwoMonths(t, db)

	for _, tc := range []struct {
		name  string
		month *time.Time
	}{
		{"all months", nil},
		{"january only", &jan},
	} {
		t.Run(tc.name, func(t *testing.T) {
			top, err := TopBrands(db, 100, tc.month)
			if err != nil {
				t.Fatalf("TopBrands: %v", err)
			}
			listed, err := ListBrandTotals(db, tc.month, 0, 100)
			if err != nil {
				t.Fatalf("ListBrandTotals: %v", err)
			}
			if len(top) != len(listed) {
				t.Fatalf("TopBrands has %d brands, ListBrandTotals has %d", len(top), len(listed))
			}
			byCode := make(map[string]float64, len(listed))
			for _, b := range listed {
				byCode[b.BrandCode] = b.TotalAmount
			}
			for _, b := range top {
				if !almostEqual(byCode[b.BrandCode], b.TotalAmount) {
					t.Errorf("brand %s: storage-side total %v, in-memory total %v",
						b.BrandCode, b.TotalAmount, byCode[b.BrandCode])
				}
			}
		})
	}
}

func TestListBrandTotalsRankingAndPaging(t *testing.T) {
	db := newTestDB(t)
	seedTwoMonths(t, db)

	// BrandA 420, BrandB 250, BrandC 100 across both months
	totals, err := ListBrandTotals(db, nil, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := []BrandTotal{
		{BrandCode: "BrandA", TotalAmount: 420},
		{BrandCode: "BrandB", TotalAmount: 250},
		{BrandCode: "BrandC", TotalAmount: 100},
	}
	if len(totals) != len(want) {
		t.Fatalf("got %d brands, want %d", len(totals), len(want))
	}
	for i := range want {
		if totals[i].BrandCode != want[i].BrandCode || !almostEqual(totals[i].TotalAmount, want[i].TotalAmount) {
			t.Errorf("rank %d = %+v, want %+v", i, totals[i], want[i])
		}
	}

	// pagination slices the ranked result
	page, err := ListBrandTotals(db, nil, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].BrandCode != "BrandB" {
		t.Errorf("page(offset=1, limit=1) = %+v, want just BrandB", page)
	}

	// offset past the end is empty, not an error
	empty, err := ListBrandTotals(db, nil, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("offset past end returned %d brands, want 0", len(empty))
	}
}

func TestTotalSales(t *testing.T) {
	db := newTestDB(t)
	jan, feb := seedTwoMonths(t, db)

	t.Run("unscoped sums every customer", func(t *testing.T) {
		got, err := TotalSales(db, nil)
		if err != nil {
			t.Fatal(err)
		}
		// 1001 total 600 (february overwrote 500) + 1002 120 + 1003 50
		if !almostEqual(got, 770) {
			t.Errorf("TotalSales = %v, want 770", got)
		}
	})

	t.Run("month scope gates by activity but sums whole totals", func(t *testing.T) {
		got, err := TotalSales(db, &jan)
		if err != nil {
			t.Fatal(err)
		}
		// 1001 and 1002 are active in january; 1001 contributes its overall
		// total (600), once, despite having two january lines
		if !almostEqual(got, 720) {
			t.Errorf("TotalSales(january) = %v, want 720", got)
		}

		got, err = TotalSales(db, &feb)
		if err != nil {
			t.Fatal(err)
		}
		if !almostEqual(got, 650) {
			t.Errorf("TotalSales(february) = %v, want 650", got)
		}
	})

	t.Run("month with no activity", func(t *testing.T) {
		march := monthKey(t, "2024-03")
		got, err := TotalSales(db, &march)
		if err != nil {
			t.Fatal(err)
		}
		if got != 0 {
			t.Errorf("TotalSales(march) = %v, want 0", got)
		}
	})
}

func TestTopCustomers(t *testing.T) {
	db := newTestDB(t)
	jan, _ := seedTwoMonths(t, db)

	t.Run("ordering and limit", func(t *testing.T) {
		customers, err := TopCustomers(db, 2, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(customers) != 2 {
			t.Fatalf("got %d customers, want 2", len(customers))
		}
		if customers[0].CustomerCode != "1001" || customers[1].CustomerCode != "1002" {
			t.Errorf("ranking = [%s %s], want [1001 1002]",
				customers[0].CustomerCode, customers[1].CustomerCode)
		}
	})

	t.Run("month scope", func(t *testing.T) {
		customers, err := TopCustomers(db, 10, &jan)
		if err != nil {
			t.Fatal(err)
		}
		if len(customers) != 2 {
			t.Fatalf("got %d customers, want 2 (1003 has no january activity)", len(customers))
		}
		for _, c := range customers {
			if c.CustomerCode == "1003" {
				t.Error("customer 1003 ranked for january without activity")
			}
		}
	})

	t.Run("inactive month is empty", func(t *testing.T) {
		march := monthKey(t, "2024-03")
		customers, err := TopCustomers(db, 10, &march)
		if err != nil {
			t.Fatal(err)
		}
		if len(customers) != 0 {
			t.Errorf("got %d customers for an empty month, want 0", len(customers))
		}
	})
}

func TestListCustomers(t *testing.T) {
	db := newTestDB(t)
	seedTwoMonths(t, db)

	t.Run("filter by salesman", func(t *testing.T) {
		customers, err := ListCustomers(db, CustomerFilter{Salesman: "Alice", Limit: 100})
		if err != nil {
			t.Fatal(err)
		}
		if len(customers) != 1 || customers[0].CustomerCode != "1001" {
			t.Errorf("filter by salesman = %+v, want just 1001", customers)
		}
	})

	t.Run("filter by customer code", func(t *testing.T) {
		customers, err := ListCustomers(db, CustomerFilter{CustomerCode: "1002", Limit: 100})
		if err != nil {
			t.Fatal(err)
		}
		if len(customers) != 1 || customers[0].CustomerCode != "1002" {
			t.Errorf("filter by code = %+v, want just 1002", customers)
		}
	})

	t.Run("no match is empty", func(t *testing.T) {
		customers, err := ListCustomers(db, CustomerFilter{Salesman: "Nobody", Limit: 100})
		if err != nil {
			t.Fatal(err)
		}
		if len(customers) != 0 {
			t.Errorf("got %d customers, want 0", len(customers))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := ListCustomers(db, CustomerFilter{Offset: 1, Limit: 1})
		if err != nil {
			t.Fatal(err)
		}
		if len(page) != 1 {
			t.Errorf("page(offset=1, limit=1) returned %d customers, want 1", len(page))
		}
	})
}

func TestListBrandSalesRawMode(t *testing.T) {
	db := newTestDB(t)
	jan, _ := seedTwoMonths(t, db)

	all, err := ListBrandSales(db, nil, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("got %d lines, want 5", len(all))
	}

	janOnly, err := ListBrandSales(db, &jan, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(janOnly) != 3 {
		t.Fatalf("got %d january lines, want 3", len(janOnly))
	}

	page, err := ListBrandSales(db, nil, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Errorf("page(limit=2) returned %d lines, want 2", len(page))
	}
}

func TestCustomerBrandSales(t *testing.T) {
	db := newTestDB(t)
	jan, feb := seedTwoMonths(t, db)

	var alice model.Customer
	if err := db.Where("customer_code = ?", "1001").First(&alice).Error; err != nil {
		t.Fatal(err)
	}

	all, err := CustomerBrandSales(db, alice.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d lines, want 3 across both months", len(all))
	}

	janOnly, err := CustomerBrandSales(db, alice.ID, &jan)
	if err != nil {
		t.Fatal(err)
	}
	if len(janOnly) != 2 {
		t.Fatalf("got %d january lines, want 2", len(janOnly))
	}
	var sum float64
	for _, s := range janOnly {
		sum += s.Amount
	}
	if !almostEqual(sum, 500) {
		t.Errorf("january amounts sum to %v, want 500", sum)
	}

	febOnly, err := CustomerBrandSales(db, alice.ID, &feb)
	if err != nil {
		t.Fatal(err)
	}
	if len(febOnly) != 1 || febOnly[0].BrandCode != "BrandC" {
		t.Errorf("february lines = %+v, want one BrandC line", febOnly)
	}
}
