package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTransactionDateJSON(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"accountId":"acc-1","type":"expense","amount":"30.00","date":"2025-08-14"}`), &tx)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	want := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	if !tx.Date.Equal(want) {
		t.Errorf("date = %s, want %s", tx.Date, want)
	}
	if !tx.Amount.Equal(tx.Amount.Truncate(2)) {
		t.Errorf("amount lost precision: %s", tx.Amount)
	}

	// RFC3339 input is accepted but the time of day is dropped
	if err := json.Unmarshal([]byte(`{"date":"2025-08-14T18:45:00Z"}`), &tx); err != nil {
		t.Fatalf("unmarshal RFC3339 failed: %v", err)
	}
	if !tx.Date.Equal(want) {
		t.Errorf("date = %s, want %s", tx.Date, want)
	}

	if err := json.Unmarshal([]byte(`{"date":"14/08/2025"}`), &tx); err == nil {
		t.Error("unsupported date format accepted")
	}

	out, err := json.Marshal(Transaction{ID: "tx-1", Date: want})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if m["date"] != "2025-08-14" {
		t.Errorf("marshaled date = %v, want 2025-08-14", m["date"])
	}
}
