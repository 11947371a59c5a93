package controllers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-08-14", "2025-08-14", false},
		{" 2025-08-14 ", "2025-08-14", false},
		{"2025-08-14T10:30:00Z", "2025-08-14", false},
		{"", "", true},
		{"14/08/2025", "", true},
		{"not-a-date", "", true},
	}
	for _, tt := range tests {
		got, err := parseDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDay(%q) = %q, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDay(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransactionPayloadToInput(t *testing.T) {
	p := transactionPayload{
		AccountID: " acc-1 ",
		Type:      " income ",
		Amount:    decimal.RequireFromString("12.50"),
		Date:      "2025-08-14",
	}
	in, err := p.toInput()
	if err != nil {
		t.Fatalf("toInput failed: %v", err)
	}
	if in.AccountID != "acc-1" || in.Type != "income" {
		t.Errorf("fields not trimmed: %+v", in)
	}
	want := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	if !in.Date.Equal(want) {
		t.Errorf("date = %s, want %s", in.Date, want)
	}

	p.Date = "yesterday"
	if _, err := p.toInput(); err == nil {
		t.Error("bad date accepted")
	}

	p.Date = ""
	in, err = p.toInput()
	if err != nil {
		t.Fatalf("empty date should pass through for the ledger to reject: %v", err)
	}
	if !in.Date.IsZero() {
		t.Errorf("empty date produced %s, want zero", in.Date)
	}
}
