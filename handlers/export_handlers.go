// handlers/export_handlers.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rakadenny/tablepos-backend/utils"
)

// ExportDailySettlements exports a day's settlements to Excel format
func ExportDailySettlements(c *gin.Context) {
	day := time.Now().UTC()
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			utils.HandleError(c, utils.NewValidationError("Date must be formatted as YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	excelFile, filename, err := handlerServices.ExcelService.ExportDayToExcel(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export settlements: " + err.Error()})
		return
	}

	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	// Write Excel file to response
	if err := excelFile.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file: " + err.Error()})
		return
	}
}
