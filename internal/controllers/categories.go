package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

type CategoryController struct{ DB *sql.DB }

func (c CategoryController) CreateOrList(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body struct {
			Name  string `json:"name"`
			Color string `json:"color"`
			Type  string `json:"type"`
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
		if body.Type != models.TransactionTypeIncome && body.Type != models.TransactionTypeExpense {
			http.Error(w, "type must be income or expense", http.StatusBadRequest)
			return
		}
		id := uuid.NewString()
		_, err := c.DB.Exec(`INSERT INTO categories (id, owner_id, name, color, type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
			id, ownerID(r), strings.TrimSpace(body.Name), body.Color, body.Type)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": id})
	case http.MethodGet:
		rows, err := c.DB.Query(`SELECT id, owner_id, name, color, type, created_at, updated_at FROM categories WHERE owner_id = ? ORDER BY name`, ownerID(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		items := make([]models.Category, 0)
		for rows.Next() {
			var cat models.Category
			if err := rows.Scan(&cat.ID, &cat.OwnerID, &cat.Name, &cat.Color, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			items = append(items, cat)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(items)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Update changes name and color. The type tag stays fixed so existing
// transactions can never end up referencing a category of the other kind.
func (c CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/categories/")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var body struct {
		Name  string `json:"name"`
		Color string `json:"color"`
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
	res, err := c.DB.Exec(`UPDATE categories SET name = ?, color = ?, updated_at = NOW() WHERE id = ? AND owner_id = ?`,
		strings.TrimSpace(body.Name), body.Color, id, ownerID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		if err := c.DB.QueryRow(`SELECT COUNT(1) FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID(r)).Scan(&exists); err != nil || exists == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": id})
}

// Delete removes the category. Transactions that referenced it keep their
// rows and balances; the FK sets their category to NULL.
func (c CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/categories/")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	res, err := c.DB.Exec(`DELETE FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": id})
}
