package repository

import (
	"database/sql"
	"time"

	"github.com/rakadenny/tablepos-backend/models"
)

// SettlementRepository persists finalized settlements and their payments
type SettlementRepository struct {
	db *sql.DB
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// StoreSettlement persists a finalized settlement and its payment entries
func (r *SettlementRepository) StoreSettlement(settlement *models.Settlement) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO settlements (id, table_code, original_total_cents, tip_cents, discount_cents,
			final_total_cents, change_cents, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(query, settlement.ID, settlement.TableCode, settlement.OriginalTotalCents,
		settlement.TipCents, settlement.DiscountCents, settlement.FinalTotalCents,
		settlement.ChangeCents, settlement.SettledAt)
	if err != nil {
		return err
	}

	paymentQuery := `
		INSERT INTO settlement_payments (settlement_id, payment_id, payment_method, payment_type,
			amount_cents, expected_cents, change_cents, surcharge_cents, surcharge_percent,
			reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, payment := range settlement.Payments {
		_, err = tx.Exec(paymentQuery, settlement.ID, payment.ID, payment.Method,
			payment.PaymentType, payment.AmountCents, payment.ExpectedCents, payment.ChangeCents,
			payment.SurchargeCents, payment.SurchargePercent, payment.Reference, payment.Timestamp)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSettlementByID retrieves a settlement with its payments
func (r *SettlementRepository) GetSettlementByID(id string) (*models.Settlement, error) {
	query := `
		SELECT id, table_code, original_total_cents, tip_cents, discount_cents,
			final_total_cents, change_cents, settled_at
		FROM settlements
		WHERE id = $1
	`
	var settlement models.Settlement
	err := r.db.QueryRow(query, id).Scan(
		&settlement.ID, &settlement.TableCode, &settlement.OriginalTotalCents,
		&settlement.TipCents, &settlement.DiscountCents, &settlement.FinalTotalCents,
		&settlement.ChangeCents, &settlement.SettledAt,
	)
	if err != nil {
		return nil, err
	}

	payments, err := r.getPayments(id)
	if err != nil {
		return nil, err
	}
	settlement.Payments = payments

	return &settlement, nil
}

// ListSettlementsByDay retrieves all settlements settled within a calendar day
func (r *SettlementRepository) ListSettlementsByDay(day time.Time) ([]models.Settlement, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	query := `
		SELECT id, table_code, original_total_cents, tip_cents, discount_cents,
			final_total_cents, change_cents, settled_at
		FROM settlements
		WHERE settled_at >= $1 AND settled_at < $2
		ORDER BY settled_at ASC
	`
	rows, err := r.db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var settlement models.Settlement
		err := rows.Scan(
			&settlement.ID, &settlement.TableCode, &settlement.OriginalTotalCents,
			&settlement.TipCents, &settlement.DiscountCents, &settlement.FinalTotalCents,
			&settlement.ChangeCents, &settlement.SettledAt,
		)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range settlements {
		payments, err := r.getPayments(settlements[i].ID)
		if err != nil {
			return nil, err
		}
		settlements[i].Payments = payments
	}

	return settlements, nil
}

// getPayments retrieves the payment entries for a settlement
func (r *SettlementRepository) getPayments(settlementID string) ([]models.PaymentEntry, error) {
	query := `
		SELECT payment_id, payment_method, payment_type, amount_cents, expected_cents,
			change_cents, surcharge_cents, surcharge_percent, reference, created_at
		FROM settlement_payments
		WHERE settlement_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, settlementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.PaymentEntry
	for rows.Next() {
		var payment models.PaymentEntry
		err := rows.Scan(&payment.ID, &payment.Method, &payment.PaymentType,
			&payment.AmountCents, &payment.ExpectedCents, &payment.ChangeCents,
			&payment.SurchargeCents, &payment.SurchargePercent, &payment.Reference,
			&payment.Timestamp)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
