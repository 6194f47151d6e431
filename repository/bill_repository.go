package repository

import (
	"database/sql"

	"github.com/rakadenny/tablepos-backend/models"
)

// BillRepository loads open-bill snapshots from the order tables
type BillRepository struct {
	db *sql.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *sql.DB) *BillRepository {
	return &BillRepository{db: db}
}

// GetOpenBillByTable retrieves the open bill for a table, with its line items
func (r *BillRepository) GetOpenBillByTable(tableCode string) (*models.Bill, error) {
	var billID int64
	bill := &models.Bill{TableCode: tableCode}

	query := `
		SELECT id, total_cents
		FROM bills
		WHERE table_code = $1 AND status = 'open'
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(query, tableCode).Scan(&billID, &bill.OriginalTotalCents)
	if err != nil {
		return nil, err
	}

	itemQuery := `
		SELECT item_id, description, unit_price_cents, quantity
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(itemQuery, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.BillItem
		err := rows.Scan(&item.ID, &item.Description, &item.UnitPriceCents, &item.Quantity)
		if err != nil {
			return nil, err
		}
		bill.Items = append(bill.Items, item)
	}

	return bill, rows.Err()
}
