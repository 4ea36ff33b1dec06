package handler

import (
	"net/http"
	"strconv"

	"github.com/WatsonMulkey/The-Number/internal/budget"
	"github.com/WatsonMulkey/The-Number/internal/models"
	"github.com/WatsonMulkey/The-Number/internal/store"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler owns the recurring expense endpoints.
type ExpenseHandler struct {
	Expenses *store.ExpenseStore
}

func NewExpenseHandler(expenses *store.ExpenseStore) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses}
}

type expenseReq struct {
	Name    string  `json:"name" binding:"required"`
	Amount  float64 `json:"amount"`
	IsFixed bool    `json:"is_fixed"`
}

func expenseResp(e *models.Expense) gin.H {
	return gin.H{
		"id":         e.ID,
		"name":       e.Name,
		"amount":     e.Amount,
		"is_fixed":   e.IsFixed,
		"created_at": e.CreatedAt,
	}
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	row, err := h.Expenses.Create(user.ID, req.Name, req.Amount, req.IsFixed)
	if err != nil {
		writeStoreErr(c, err)
		return
	}

	util.Success(c, util.Response{"expense": expenseResp(row)})
}

func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.Expenses.List(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list expenses failed")
		return
	}

	items := make([]gin.H, 0, len(rows))
	var total float64
	for i := range rows {
		items = append(items, expenseResp(&rows[i]))
		total += rows[i].Amount
	}

	util.Success(c, util.Response{
		"items":         items,
		"monthly_total": total,
	})
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	row, found, err := h.Expenses.Update(user.ID, uint(id), req.Name, req.Amount, req.IsFixed)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	if !found {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
		return
	}

	util.Success(c, util.Response{"expense": expenseResp(row)})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	deleted, err := h.Expenses.Delete(user.ID, uint(id))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete expense failed")
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}

// writeStoreErr maps validation failures from the stores to field-level
// 400s and everything else to a 500.
func writeStoreErr(c *gin.Context, err error) {
	if verr, ok := budget.AsValidation(err); ok {
		util.FieldError(c, verr.Field, verr.Reason)
		return
	}
	util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
}
