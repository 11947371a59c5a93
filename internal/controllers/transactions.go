package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AravindhAjit/my-wealth-atlas/internal/ledger"
	"github.com/AravindhAjit/my-wealth-atlas/models"
)

type TransactionController struct {
	DB     *sql.DB
	Ledger *ledger.Service
}

type transactionPayload struct {
	AccountID   string          `json:"accountId"`
	CategoryID  *string         `json:"categoryId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (p transactionPayload) toInput() (ledger.TransactionInput, error) {
	in := ledger.TransactionInput{
		AccountID:   strings.TrimSpace(p.AccountID),
		CategoryID:  p.CategoryID,
		Type:        strings.TrimSpace(p.Type),
		Amount:      p.Amount,
		Description: p.Description,
	}
	if strings.TrimSpace(p.Date) != "" {
		day, err := parseDay(p.Date)
		if err != nil {
			return in, err
		}
		t, _ := time.Parse("2006-01-02", day)
		in.Date = t
	}
	return in, nil
}

func (c TransactionController) CreateOrList(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body transactionPayload
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		in, err := body.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t, err := c.Ledger.CreateTransaction(ownerID(r), in)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(t)
	case http.MethodGet:
		c.list(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c TransactionController) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	where := []string{"t.owner_id = ?"}
	args := []any{ownerID(r)}
	if v := q.Get("accountId"); v != "" {
		where = append(where, "t.account_id = ?")
		args = append(args, v)
	}
	if v := q.Get("categoryId"); v != "" {
		where = append(where, "t.category_id = ?")
		args = append(args, v)
	}
	if v := q.Get("type"); v != "" {
		if v != models.TransactionTypeIncome && v != models.TransactionTypeExpense {
			http.Error(w, "type must be income or expense", http.StatusBadRequest)
			return
		}
		where = append(where, "t.type = ?")
		args = append(args, v)
	}
	if v := q.Get("startDate"); v != "" {
		day, err := parseDay(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		where = append(where, "t.date >= ?")
		args = append(args, day)
	}
	if v := q.Get("endDate"); v != "" {
		day, err := parseDay(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		where = append(where, "t.date <= ?")
		args = append(args, day)
	}
	if v := q.Get("month"); v != "" {
		mt, err := time.Parse("2006-01", v)
		if err != nil {
			http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}
		where = append(where, "t.date >= ?")
		args = append(args, mt.Format("2006-01-02"))
		where = append(where, "t.date < ?")
		args = append(args, mt.AddDate(0, 1, 0).Format("2006-01-02"))
	}

	wc := " WHERE " + strings.Join(where, " AND ")
	base := "SELECT t.id, t.owner_id, t.account_id, t.category_id, t.type, t.amount, t.description, t.date, t.created_at, t.updated_at FROM transactions t" + wc
	countBase := "SELECT COUNT(1) FROM transactions t" + wc
	base += " ORDER BY t.date DESC, t.created_at DESC"

	lim := 50
	off := 0
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			lim = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			off = n
		}
	}
	var total int
	if err := c.DB.QueryRow(countBase, args...).Scan(&total); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	base += " LIMIT ? OFFSET ?"
	args = append(args, lim, off)
	rows, err := c.DB.Query(base, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()
	items := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		items = append(items, t)
	}
	w.Header().Set("Content-Type", "application/json")
	hasNext := off+lim < total
	nextOffset := off + lim
	if !hasNext {
		nextOffset = off
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"items": items,
		"pagination": map[string]any{
			"total": total, "limit": lim, "offset": off, "hasNext": hasNext, "nextOffset": nextOffset,
		},
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	var categoryID sql.NullString
	err := row.Scan(&t.ID, &t.OwnerID, &t.AccountID, &categoryID, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}
	return t, nil
}

func (c TransactionController) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/transactions/")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	row := c.DB.QueryRow(`SELECT t.id, t.owner_id, t.account_id, t.category_id, t.type, t.amount, t.description, t.date, t.created_at, t.updated_at FROM transactions t WHERE t.id = ? AND t.owner_id = ?`, id, ownerID(r))
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(t)
}

func (c TransactionController) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/transactions/")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var body transactionPayload
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in, err := body.toInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := c.Ledger.UpdateTransaction(ownerID(r), id, in)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(t)
}

func (c TransactionController) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/transactions/")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Ledger.DeleteTransaction(ownerID(r), id); err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": id})
}
