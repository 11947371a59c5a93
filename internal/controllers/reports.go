package controllers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

type ReportsController struct {
	DB *gorm.DB
}

// GetSummary reads the per-account summary view: simple income/expense sums
// next to the maintained running balance. The view does not feed the
// balance; it only reports alongside it.
func (c ReportsController) GetSummary(w http.ResponseWriter, r *http.Request) {
	var list []map[string]any
	if err := c.DB.Table("v_account_summary").Where("owner_id = ?", ownerID(r)).Order("name").Find(&list).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	responseList := make([]map[string]any, 0, len(list))
	for _, item := range list {
		responseList = append(responseList, map[string]any{
			"accountId":      item["account_id"],
			"name":           item["name"],
			"currency":       item["currency"],
			"currentBalance": item["current_balance"],
			"totalIncome":    item["total_income"],
			"totalExpense":   item["total_expense"],
			"net":            item["net"],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(responseList)
}
