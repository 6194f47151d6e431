package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
)

// SettlementLister lists finalized settlements for reporting.
type SettlementLister interface {
	ListSettlementsByDay(day time.Time) ([]models.Settlement, error)
}

// ExcelService handles Excel export functionality
type ExcelService struct {
	settlements SettlementLister
}

// NewExcelService creates a new Excel service
func NewExcelService(settlements SettlementLister) *ExcelService {
	return &ExcelService{settlements: settlements}
}

// MethodSummary aggregates payments taken through one tender method.
type MethodSummary struct {
	Method         string
	Count          int
	AmountCents    int64
	SurchargeCents int64
}

// ExportDayToExcel generates the end-of-day Excel report for a calendar day
func (s *ExcelService) ExportDayToExcel(day time.Time) (*excelize.File, string, error) {
	settlements, err := s.settlements.ListSettlementsByDay(day)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list settlements: %v", err)
	}

	// Create Excel file
	f := excelize.NewFile()

	// Create sheets
	err = s.createSummarySheet(f, day, settlements)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}

	err = s.createSettlementsSheet(f, settlements)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create settlements sheet: %v", err)
	}

	err = s.createPaymentsSheet(f, settlements)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create payments sheet: %v", err)
	}

	// Delete the default sheet if it exists
	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Settlements_%s.xlsx",
		utils.CleanFileName("Daily"),
		day.Format("2006-01-02"))

	return f, filename, nil
}

// createSummarySheet creates Sheet 1: Summary
func (s *ExcelService) createSummarySheet(f *excelize.File, day time.Time, settlements []models.Settlement) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	f.SetCellValue(sheetName, "A1", "Date")
	f.SetCellValue(sheetName, "B1", day.Format("2006-01-02"))
	f.SetCellValue(sheetName, "A2", "Settlements")
	f.SetCellValue(sheetName, "B2", len(settlements))

	var totalCents, tipCents, discountCents, changeCents int64
	for _, settlement := range settlements {
		totalCents += settlement.FinalTotalCents
		tipCents += settlement.TipCents
		discountCents += settlement.DiscountCents
		changeCents += settlement.ChangeCents
	}
	f.SetCellValue(sheetName, "A3", "Total Settled")
	f.SetCellValue(sheetName, "B3", utils.FormatCents(totalCents))
	f.SetCellValue(sheetName, "A4", "Tips")
	f.SetCellValue(sheetName, "B4", utils.FormatCents(tipCents))
	f.SetCellValue(sheetName, "A5", "Discounts")
	f.SetCellValue(sheetName, "B5", utils.FormatCents(discountCents))
	f.SetCellValue(sheetName, "A6", "Change Given")
	f.SetCellValue(sheetName, "B6", utils.FormatCents(changeCents))

	// Tender breakdown
	breakdownStartRow := 8
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", breakdownStartRow), "Tender Breakdown:")

	breakdownHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", breakdownStartRow), fmt.Sprintf("A%d", breakdownStartRow), breakdownHeaderStyle)

	breakdownStartRow++
	breakdownHeaders := []string{"Method", "Count", "Amount", "Card Fees"}
	for i, header := range breakdownHeaders {
		cell := fmt.Sprintf("%s%d", string(rune('A'+i)), breakdownStartRow)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", breakdownStartRow), fmt.Sprintf("D%d", breakdownStartRow), headerStyle)

	summaries := s.calculateMethodSummaries(settlements)
	for i, summary := range summaries {
		row := breakdownStartRow + 1 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), summary.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), summary.Count)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), utils.FormatCents(summary.AmountCents))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), utils.FormatCents(summary.SurchargeCents))
	}

	// Auto-fit columns
	f.SetColWidth(sheetName, "A", "D", 15)

	return nil
}

// createSettlementsSheet creates Sheet 2: one row per finalized settlement
func (s *ExcelService) createSettlementsSheet(f *excelize.File, settlements []models.Settlement) error {
	sheetName := "Settlements"
	f.NewSheet(sheetName)

	headers := []string{"Settled At", "Settlement ID", "Table", "Subtotal", "Tip", "Discount", "Total", "Change", "Payments"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	lastCol := string(rune('A' + len(headers) - 1))
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", lastCol), headerStyle)

	for i, settlement := range settlements {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), settlement.SettledAt.Format("15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), settlement.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), settlement.TableCode)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), utils.FormatCents(settlement.OriginalTotalCents))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), utils.FormatCents(settlement.TipCents))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), utils.FormatCents(settlement.DiscountCents))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), utils.FormatCents(settlement.FinalTotalCents))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), utils.FormatCents(settlement.ChangeCents))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), len(settlement.Payments))
	}

	// Auto-fit columns
	f.SetColWidth(sheetName, "A", lastCol, 12)
	f.SetColWidth(sheetName, "B", "B", 38) // Settlement id column wider

	return nil
}

// createPaymentsSheet creates Sheet 3: one row per payment entry
func (s *ExcelService) createPaymentsSheet(f *excelize.File, settlements []models.Settlement) error {
	sheetName := "Payments"
	f.NewSheet(sheetName)

	headers := []string{"Settlement ID", "Payment ID", "Method", "Amount", "Change", "Card Fee", "Reference"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	lastCol := string(rune('A' + len(headers) - 1))
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", lastCol), headerStyle)

	row := 2
	for _, settlement := range settlements {
		for _, payment := range settlement.Payments {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), settlement.ID)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), payment.ID)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), paymentLabel(payment))
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), utils.FormatCents(payment.AmountCents))
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), utils.FormatCents(payment.ChangeCents))
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), utils.FormatCents(payment.SurchargeCents))
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), payment.Reference)
			row++
		}
	}

	// Auto-fit columns
	f.SetColWidth(sheetName, "A", "B", 38)
	f.SetColWidth(sheetName, "C", lastCol, 12)

	return nil
}

// calculateMethodSummaries aggregates payments by tender method
func (s *ExcelService) calculateMethodSummaries(settlements []models.Settlement) []MethodSummary {
	order := []string{"Cash", "Card", "Account", "Giftcard", "Payment"}
	summaryMap := make(map[string]*MethodSummary)

	for _, settlement := range settlements {
		for _, payment := range settlement.Payments {
			label := paymentLabel(payment)
			if _, exists := summaryMap[label]; !exists {
				summaryMap[label] = &MethodSummary{Method: label}
			}
			summaryMap[label].Count++
			summaryMap[label].AmountCents += payment.AmountCents - payment.ChangeCents
			summaryMap[label].SurchargeCents += payment.SurchargeCents
		}
	}

	var summaries []MethodSummary
	for _, label := range order {
		if summary, exists := summaryMap[label]; exists {
			summaries = append(summaries, *summary)
		}
	}
	return summaries
}
