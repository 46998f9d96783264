package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Giusk10/SpendyApp/internal/middleware"
	"github.com/Giusk10/SpendyApp/internal/service"
	"github.com/Giusk10/SpendyApp/internal/util"
)

// ExpenseHandler exposes the expense service over HTTP.
type ExpenseHandler struct {
	Service *service.ExpenseService
}

func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{Service: svc}
}

// writeError translates a classified service failure into an HTTP status and
// business code. Infrastructure details never leak to the caller.
func writeError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindEmptyInput, service.KindNoHeaderRow, service.KindDateParse,
		service.KindNoRecords, service.KindMalformedRequest:
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case service.KindNotFound:
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case service.KindUnauthenticated:
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}

// ImportCSV handles POST /import: multipart upload of a delimited export.
func (h *ExpenseHandler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing file upload")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "cannot read file upload")
		return
	}
	defer f.Close()

	count, err := h.Service.Import(f, middleware.Token(c))
	if err != nil {
		writeError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "Expenses imported",
		"count":   count,
	})
}

// GetExpenses handles GET /getExpenses.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	expenses, err := h.Service.List(middleware.Token(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(expenses) == 0 {
		util.NoContent(c)
		return
	}
	util.Success(c, util.Response{"expenses": expenses})
}

type dateRangeReq struct {
	StartedDate   string `json:"startedDate" binding:"required"`
	CompletedDate string `json:"completedDate" binding:"required"`
}

// GetExpenseByDate handles POST /getExpenseByDate.
func (h *ExpenseHandler) GetExpenseByDate(c *gin.Context) {
	var req dateRangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	expenses, err := h.Service.ListByDateRange(req.StartedDate, req.CompletedDate, middleware.Token(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(expenses) == 0 {
		util.NoContent(c)
		return
	}
	util.Success(c, util.Response{"expenses": expenses})
}

type monthYearReq struct {
	Month string `json:"month" binding:"required"`
	Year  string `json:"year" binding:"required"`
}

// GetExpenseByMonth handles POST /getExpenseByMonth.
func (h *ExpenseHandler) GetExpenseByMonth(c *gin.Context) {
	var req monthYearReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	expenses, err := h.Service.ListByMonth(req.Month, req.Year, middleware.Token(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(expenses) == 0 {
		util.NoContent(c)
		return
	}
	util.Success(c, util.Response{"expenses": expenses})
}

type yearReq struct {
	Year string `json:"year" binding:"required"`
}

// GetMonthlyAmountOfYear handles POST /getMonthlyAmountOfYear.
func (h *ExpenseHandler) GetMonthlyAmountOfYear(c *gin.Context) {
	var req yearReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	totals, err := h.Service.MonthlyTotalsOfYear(req.Year, middleware.Token(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(totals) == 0 {
		util.NoContent(c)
		return
	}
	util.Success(c, util.Response{"monthlyAmount": totals})
}

type deleteReq struct {
	ExpenseID string `json:"expenseId" binding:"required"`
}

// DeleteExpense handles DELETE /deleteExpense.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	var req deleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := h.Service.Delete(req.ExpenseID); err != nil {
		writeError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "Expense deleted successfully"})
}

// AddExpense handles POST /addExpense: manual creation of one record. The
// body is a flat string map in the same field vocabulary the CSV importer
// resolves to.
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	expense, err := h.Service.AddOne(fields, middleware.Token(c))
	if err != nil {
		writeError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "Expense added successfully",
		"expense": expense,
	})
}

// Test handles POST /test, a plain liveness probe.
func (h *ExpenseHandler) Test(c *gin.Context) {
	c.String(http.StatusOK, "Expense service is up and running!")
}
