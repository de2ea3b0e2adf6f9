package report

import (
	"testing"
)

func TestNewSchema(t *testing.T) {
	t.Run("standard layout", func(t *testing.T) {
		s, err := NewSchema([]string{"CustomerCode", "Salesman", "Total", "BrandA", "BrandB", "BrandCount"})
		if err != nil {
			t.Fatalf("NewSchema returned error: %v", err)
		}
		if len(s.Brands) != 2 {
			t.Fatalf("got %d brand columns, want 2", len(s.Brands))
		}
		if s.Brands[0].Code != "BrandA" || s.Brands[0].Index != 3 {
			t.Errorf("first brand = %+v, want BrandA at index 3", s.Brands[0])
		}
		if s.Brands[1].Code != "BrandB" || s.Brands[1].Index != 4 {
			t.Errorf("second brand = %+v, want BrandB at index 4", s.Brands[1])
		}
		if s.CountColumn != 5 {
			t.Errorf("CountColumn = %d, want 5", s.CountColumn)
		}
	})

	t.Run("blank brand label skipped", func(t *testing.T) {
		s, err := NewSchema([]string{"Code", "Salesman", "Total", "BrandA", "  ", "BrandC", "Count"})
		if err != nil {
			t.Fatalf("NewSchema returned error: %v", err)
		}
		if len(s.Brands) != 2 {
			t.Fatalf("got %d brand columns, want 2", len(s.Brands))
		}
		if s.Brands[1].Code != "BrandC" || s.Brands[1].Index != 5 {
			t.Errorf("second brand = %+v, want BrandC at index 5", s.Brands[1])
		}
	})

	t.Run("too few columns", func(t *testing.T) {
		if _, err := NewSchema([]string{"Code", "Salesman", "Total", "Count"}); err == nil {
			t.Error("NewSchema accepted a report without brand columns")
		}
	})
}

func TestIsCustomerCode(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1001", true},
		{"  42  ", true},
		{"0", true},
		{"", false},
		{"   ", false},
		{"TOTAL", false},
		{"12A3", false},
		{"1001.0", false},
		{"-5", false},
	}
	for _, tt := range tests {
		if got := IsCustomerCode(tt.input); got != tt.want {
			t.Errorf("IsCustomerCode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSchemaCellAccess(t *testing.T) {
	s, err := NewSchema([]string{"CustomerCode", "Salesman", "Total", "BrandA", "BrandB", "BrandCount"})
	if err != nil {
		t.Fatalf("NewSchema returned error: %v", err)
	}

	row := []string{" 1001 ", "Alice", "500.5", "300", "not-a-number", "2.0"}

	if got := s.CustomerCode(row); got != "1001" {
		t.Errorf("CustomerCode = %q, want %q", got, "1001")
	}
	if name, ok := s.Salesman(row); !ok || name != "Alice" {
		t.Errorf("Salesman = %q, %v, want Alice, true", name, ok)
	}
	if total, ok := s.Total(row); !ok || total != 500.5 {
		t.Errorf("Total = %v, %v, want 500.5, true", total, ok)
	}
	if n, ok := s.BrandCount(row); !ok || n != 2 {
		t.Errorf("BrandCount = %v, %v, want 2, true", n, ok)
	}
	if amount, ok := s.Amount(row, s.Brands[0]); !ok || amount != 300 {
		t.Errorf("Amount(BrandA) = %v, %v, want 300, true", amount, ok)
	}
	if _, ok := s.Amount(row, s.Brands[1]); ok {
		t.Error("Amount(BrandB) parsed a non-numeric cell")
	}

	// a short row: every cell beyond its length counts as missing
	short := []string{"1001"}
	if _, ok := s.Salesman(short); ok {
		t.Error("Salesman reported present on a short row")
	}
	if _, ok := s.BrandCount(short); ok {
		t.Error("BrandCount reported present on a short row")
	}
}
