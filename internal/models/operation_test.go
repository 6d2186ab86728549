package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"01/01/2024", "2024-01-01"},
		{"15/02/2024", "2024-02-15"},
		{"31/12/2023", "2023-12-31"},
		{"09/08/2024", "2024-08-09"}, // day/month stay zero-padded
	}
	for _, tt := range tests {
		op := Operation{Date: tt.date}
		got, err := op.PeriodKey()
		if err != nil {
			t.Errorf("PeriodKey(%s): %v", tt.date, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PeriodKey(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestPeriodKey_RejectsOtherLayouts(t *testing.T) {
	for _, date := range []string{"2024-01-01", "1/1/2024", "32/01/2024", "15/13/2024", ""} {
		op := Operation{Date: date}
		if _, err := op.PeriodKey(); err == nil {
			t.Errorf("PeriodKey(%q): expected error", date)
		}
	}
}

func TestPeriodKeyOrderIsChronological(t *testing.T) {
	// Lexicographic comparison over period keys must equal date order.
	earlier, _ := Operation{Date: "02/12/2023"}.PeriodKey()
	later, _ := Operation{Date: "01/01/2024"}.PeriodKey()
	if !(earlier < later) {
		t.Errorf("expected %s < %s", earlier, later)
	}
}

func TestClosePrice(t *testing.T) {
	val := func(f float64) *float64 { return &f }

	tests := []struct {
		name   string
		quote  InstrumentQuote
		want   string
		usable bool
	}{
		{"positive close", InstrumentQuote{Close: val(123.45)}, "123.45", true},
		{"missing close", InstrumentQuote{}, "", false},
		{"zero close", InstrumentQuote{Close: val(0)}, "", false},
		{"negative close", InstrumentQuote{Close: val(-1)}, "", false},
		{"bid does not substitute", InstrumentQuote{BidPrice: val(99)}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, usable := tt.quote.ClosePrice()
			if usable != tt.usable {
				t.Fatalf("usable = %v, want %v", usable, tt.usable)
			}
			if usable && got.String() != tt.want {
				t.Errorf("price = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCatalogTickers(t *testing.T) {
	catalog := DefaultCatalog()
	tickers := CatalogTickers(catalog)
	if len(tickers) != len(catalog) {
		t.Fatalf("expected %d tickers, got %d", len(catalog), len(tickers))
	}
	for _, entry := range catalog {
		if !CatalogHasTicker(catalog, entry.Ticker) {
			t.Errorf("catalog does not recognize its own ticker %s", entry.Ticker)
		}
	}
	if CatalogHasTicker(catalog, "NOPE") {
		t.Error("unknown ticker must not be in the catalog")
	}
}

func TestValidate_Bounds(t *testing.T) {
	valid := Operation{Date: "01/01/2024", Ticker: "AMZND", Amount: decimal.NewFromInt(100), Qty: decimal.NewFromInt(1)}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid operation rejected: %v", err)
	}

	huge := valid
	huge.Amount = MaxOperationValue.Add(decimal.NewFromInt(1))
	if err := huge.Validate(); err == nil {
		t.Error("expected amount bound to reject")
	}
}
