package services

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestReceiptService_BuildReceipt(t *testing.T) {
	service := NewReceiptService()

	settlement := &models.Settlement{
		ID:                 "e5a1c3d0-0000-0000-0000-000000000001",
		TableCode:          "T12",
		OriginalTotalCents: 4750,
		TipCents:           500,
		FinalTotalCents:    5250,
		ChangeCents:        250,
		Payments: []models.PaymentEntry{
			{Method: utils.MethodCash, AmountCents: 5500, ChangeCents: 250},
		},
		SettledAt: time.Date(2026, 8, 14, 19, 30, 0, 0, time.UTC),
	}

	receipt := service.BuildReceipt(settlement)

	assert.Equal(t, settlement.ID, receipt.SettlementID)
	assert.Contains(t, receipt.PreviewText, "Table: T12")
	assert.Contains(t, receipt.PreviewText, "Subtotal : 47.50")
	assert.Contains(t, receipt.PreviewText, "Tip      : 5.00")
	assert.Contains(t, receipt.PreviewText, "Total    : 52.50")
	assert.Contains(t, receipt.PreviewText, "Cash")
	assert.Contains(t, receipt.PreviewText, "change 2.50")
	assert.NotContains(t, receipt.PreviewText, "Discount")

	raw, err := base64.StdEncoding.DecodeString(receipt.EscposBase64)
	assert.NoError(t, err)
	// Initialize prefix and cut suffix frame the printable lines
	assert.Equal(t, []byte{0x1b, 0x40}, raw[:2])
	assert.Equal(t, []byte{0x1d, 0x56, 0x41, 0x10}, raw[len(raw)-4:])
}
