package services

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
)

// ReceiptService renders settlement receipts as preview text plus raw ESC/POS
// bytes for thermal printers.
type ReceiptService struct{}

// NewReceiptService creates a new receipt service
func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

// BuildReceipt renders the printable receipt for a finalized settlement.
func (s *ReceiptService) BuildReceipt(settlement *models.Settlement) *models.ReceiptResponse {
	lines := []string{
		"TablePOS",
		"========================",
		"Settlement: " + settlement.ID,
	}
	if settlement.TableCode != "" {
		lines = append(lines, "Table: "+settlement.TableCode)
	}
	lines = append(lines,
		"Date: "+settlement.SettledAt.Format("2006-01-02 15:04:05"),
		"------------------------",
		fmt.Sprintf("Subtotal : %s", utils.FormatCents(settlement.OriginalTotalCents)),
	)
	if settlement.TipCents != 0 {
		lines = append(lines, fmt.Sprintf("Tip      : %s", utils.FormatCents(settlement.TipCents)))
	}
	if settlement.DiscountCents != 0 {
		lines = append(lines, fmt.Sprintf("Discount : -%s", utils.FormatCents(settlement.DiscountCents)))
	}
	lines = append(lines,
		fmt.Sprintf("Total    : %s", utils.FormatCents(settlement.FinalTotalCents)),
		"------------------------",
	)
	for _, payment := range settlement.Payments {
		label := paymentLabel(payment)
		lines = append(lines, fmt.Sprintf("%-9s: %s", label, utils.FormatCents(payment.AmountCents)))
		if payment.SurchargeCents > 0 {
			lines = append(lines, fmt.Sprintf("  incl. card fee %s", utils.FormatCents(payment.SurchargeCents)))
		}
		if payment.ChangeCents > 0 {
			lines = append(lines, fmt.Sprintf("  change %s", utils.FormatCents(payment.ChangeCents)))
		}
	}
	lines = append(lines,
		"========================",
		"Thank you",
		"",
	)

	escpos := []byte{0x1b, 0x40}
	for _, line := range lines {
		escpos = append(escpos, []byte(line)...)
		escpos = append(escpos, '\n')
	}
	escpos = append(escpos, []byte{0x1d, 0x56, 0x41, 0x10}...)

	return &models.ReceiptResponse{
		SettlementID: settlement.ID,
		PreviewText:  strings.Join(lines, "\n"),
		EscposBase64: base64.StdEncoding.EncodeToString(escpos),
		FileName:     fmt.Sprintf("receipt-%s.bin", settlement.ID),
	}
}

func paymentLabel(payment models.PaymentEntry) string {
	if payment.PaymentType == utils.PaymentTypeGiftCard {
		return "Giftcard"
	}
	switch payment.Method {
	case utils.MethodCash:
		return "Cash"
	case utils.MethodCard:
		return "Card"
	case utils.MethodAccount:
		return "Account"
	default:
		return "Payment"
	}
}
