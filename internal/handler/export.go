package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Giusk10/SpendyApp/internal/middleware"
	"github.com/Giusk10/SpendyApp/internal/models"
	"github.com/Giusk10/SpendyApp/internal/util"
)

var exportHeader = []string{
	"Type", "Product", "Started Date", "Completed Date", "Description",
	"Amount", "Fee", "Currency", "State", "Category",
}

func exportRow(e *models.Expense) []string {
	return []string{
		strOrEmpty(e.Type),
		strOrEmpty(e.Product),
		timeOrEmpty(e.StartedDate),
		timeOrEmpty(e.CompletedDate),
		strOrEmpty(e.Description),
		e.Amount.String(),
		e.Fee.String(),
		strOrEmpty(e.Currency),
		strOrEmpty(e.State),
		e.Category,
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// ExportCSV handles GET /export/csv: the owner's expenses as a CSV download.
func (h *ExpenseHandler) ExportCSV(c *gin.Context) {
	expenses, err := h.Service.List(middleware.Token(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet apps pick the right encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for i := range expenses {
		writer.Write(exportRow(&expenses[i]))
	}
}

// ExportXLSX handles GET /export/xlsx: the owner's expenses as a workbook.
func (h *ExpenseHandler) ExportXLSX(c *gin.Context) {
	expenses, err := h.Service.List(middleware.Token(c))
	if err != nil {
		writeError(c, err)
		return
	}

	f := excelize.NewFile()
	const sheetName = "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	for i, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, title)
	}

	for rowIdx := range expenses {
		for colIdx, v := range exportRow(&expenses[rowIdx]) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 32)
	f.SetColWidth(sheetName, "F", "J", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
	}
}
