package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

type ProfileController struct{ DB *sql.DB }

// Provision makes sure a profile row exists for the owner. Called from the
// auth middleware so every authenticated caller has one.
func (c ProfileController) Provision(owner string) error {
	_, err := c.DB.Exec(`INSERT IGNORE INTO profiles (id, display_name, created_at, updated_at) VALUES (?, '', NOW(), NOW())`, owner)
	return err
}

func (c ProfileController) Me(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var p models.Profile
		err := c.DB.QueryRow(`SELECT id, display_name, created_at, updated_at FROM profiles WHERE id = ?`, ownerID(r)).
			Scan(&p.ID, &p.DisplayName, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	case http.MethodPut:
		var body struct {
			DisplayName string `json:"displayName"`
		}
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, err := c.DB.Exec(`UPDATE profiles SET display_name = ?, updated_at = NOW() WHERE id = ?`, strings.TrimSpace(body.DisplayName), ownerID(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": ownerID(r)})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
