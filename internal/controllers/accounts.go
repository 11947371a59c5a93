package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AravindhAjit/my-wealth-atlas/internal/ledger"
	"github.com/AravindhAjit/my-wealth-atlas/models"
)

type AccountController struct {
	DB     *sql.DB
	Ledger *ledger.Service
}

// accountPayload deliberately has no currentBalance field: the running
// balance is owned by the ledger and cannot be set through the API.
type accountPayload struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func (c AccountController) CreateOrList(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body accountPayload
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		acc, err := c.Ledger.CreateAccount(ownerID(r), ledger.AccountInput{
			Name:           strings.TrimSpace(body.Name),
			Description:    body.Description,
			Currency:       strings.TrimSpace(body.Currency),
			InitialBalance: body.InitialBalance,
		})
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(acc)
	case http.MethodGet:
		rows, err := c.DB.Query(`SELECT id, owner_id, name, description, currency, initial_balance, current_balance, created_at, updated_at FROM accounts WHERE owner_id = ? ORDER BY name`, ownerID(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		items := make([]models.Account, 0)
		for rows.Next() {
			var a models.Account
			if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Description, &a.Currency, &a.InitialBalance, &a.CurrentBalance, &a.CreatedAt, &a.UpdatedAt); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			items = append(items, a)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(items)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c AccountController) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/accounts/")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var a models.Account
	err := c.DB.QueryRow(`SELECT id, owner_id, name, description, currency, initial_balance, current_balance, created_at, updated_at FROM accounts WHERE id = ? AND owner_id = ?`, id, ownerID(r)).
		Scan(&a.ID, &a.OwnerID, &a.Name, &a.Description, &a.Currency, &a.InitialBalance, &a.CurrentBalance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// Update changes display fields only. Neither balance column is reachable
// from here.
func (c AccountController) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/accounts/")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Currency    string `json:"currency"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	currency := strings.TrimSpace(body.Currency)
	if currency == "" {
		currency = "USD"
	}
	res, err := c.DB.Exec(`UPDATE accounts SET name = ?, description = ?, currency = ?, updated_at = NOW() WHERE id = ? AND owner_id = ?`,
		strings.TrimSpace(body.Name), body.Description, currency, id, ownerID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		if err := c.DB.QueryRow(`SELECT COUNT(1) FROM accounts WHERE id = ? AND owner_id = ?`, id, ownerID(r)).Scan(&exists); err != nil || exists == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": id})
}

func (c AccountController) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/accounts/")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Ledger.DeleteAccount(ownerID(r), id); err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": id})
}

func (c AccountController) ListTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/accounts/")
	id = strings.TrimSuffix(id, "/transactions")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var exists int
	if err := c.DB.QueryRow(`SELECT COUNT(1) FROM accounts WHERE id = ? AND owner_id = ?`, id, ownerID(r)).Scan(&exists); err != nil || exists == 0 {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
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
	if err := c.DB.QueryRow(`SELECT COUNT(1) FROM transactions WHERE account_id = ? AND owner_id = ?`, id, ownerID(r)).Scan(&total); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rows, err := c.DB.Query(`SELECT t.id, t.owner_id, t.account_id, t.category_id, t.type, t.amount, t.description, t.date, t.created_at, t.updated_at FROM transactions t WHERE t.account_id = ? AND t.owner_id = ? ORDER BY t.date DESC, t.created_at DESC LIMIT ? OFFSET ?`,
		id, ownerID(r), lim, off)
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
