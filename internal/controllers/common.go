package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AravindhAjit/my-wealth-atlas/internal/ledger"
)

// OwnerHeader carries the authenticated caller's identity. The identity
// provider in front of this service is trusted to have verified it.
const OwnerHeader = "X-User-ID"

func ownerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(OwnerHeader))
}

func parseDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("date is required")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02"), nil
	}
	return "", errors.New("unsupported date format, expected YYYY-MM-DD")
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case ledger.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case ledger.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
