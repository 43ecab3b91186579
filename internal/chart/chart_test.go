package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func amounts(kv ...string) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = decimal.RequireFromString(kv[i+1])
	}
	return m
}

func TestTrend(t *testing.T) {
	r := NewPNG()

	t.Run("renders_png", func(t *testing.T) {
		series := aggregate.SortedPeriods(amounts("2024-01", "100", "2024-02", "250.50", "2024-03", "80"))
		img, err := r.Trend("Expense Trends Over Time", series)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(img, pngMagic) {
			t.Error("expected PNG output")
		}
	})

	t.Run("single_period", func(t *testing.T) {
		img, err := r.Trend("Expense Trends Over Time", aggregate.SortedPeriods(amounts("2024-01", "100")))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(img) == 0 {
			t.Error("expected image bytes")
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := r.Trend("x", nil)
		if !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
}

func TestIncomeVsExpense(t *testing.T) {
	r := NewPNG()
	img, err := r.IncomeVsExpense(amounts("2024-01", "1000"), amounts("2024-01", "400", "2024-02", "300"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("expected PNG output")
	}

	if _, err := r.IncomeVsExpense(nil, nil); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestBreakdown(t *testing.T) {
	r := NewPNG()
	img, err := r.Breakdown("Expense Breakdown", amounts("Food", "120", "Rent", "900"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("expected PNG output")
	}

	if _, err := r.Breakdown("x", amounts("Food", "0")); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for zero-only data, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	got := Encode([]byte("png"))
	raw, err := base64.StdEncoding.DecodeString(got)
	if err != nil || string(raw) != "png" {
		t.Errorf("round trip failed: %q %v", raw, err)
	}
}
