package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/models"
	"github.com/WatsonMulkey/The-Number/internal/store"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
)

// TransactionHandler owns the spending log endpoints.
type TransactionHandler struct {
	Txns *store.TransactionStore
}

func NewTransactionHandler(txns *store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{Txns: txns}
}

type createTransactionReq struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func transactionResp(t *models.Transaction) gin.H {
	return gin.H{
		"id":          t.ID,
		"date":        t.Date,
		"amount":      t.Amount,
		"description": t.Description,
		"category":    t.Category,
		"is_income":   t.IsIncome(),
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := util.ParseDate(req.Date)
		if err != nil {
			util.FieldError(c, "date", "must be RFC3339 or YYYY-MM-DD")
			return
		}
		date = parsed
	}

	row, err := h.Txns.Create(user.ID, date, req.Amount, req.Description, req.Category, time.Now())
	if err != nil {
		writeStoreErr(c, err)
		return
	}

	util.Success(c, util.Response{"transaction": transactionResp(row)})
}

func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 0 || limit > 500 {
		limit = 50
	}

	// optional day filter: ?start=YYYY-MM-DD&end=YYYY-MM-DD
	startStr := c.Query("start")
	endStr := c.Query("end")

	var rows []models.Transaction
	var err error
	if startStr != "" || endStr != "" {
		start := time.Time{}
		end := time.Now().UTC().Add(24 * time.Hour)
		if startStr != "" {
			if start, err = util.ParseDay(startStr); err != nil {
				util.FieldError(c, "start", "must be YYYY-MM-DD")
				return
			}
		}
		if endStr != "" {
			var d time.Time
			if d, err = util.ParseDay(endStr); err != nil {
				util.FieldError(c, "end", "must be YYYY-MM-DD")
				return
			}
			end = d.Add(24*time.Hour - time.Nanosecond)
		}
		rows, err = h.Txns.ListBetween(user.ID, start, end)
	} else {
		rows, err = h.Txns.List(user.ID, limit)
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list transactions failed")
		return
	}

	items := make([]gin.H, 0, len(rows))
	var total float64
	for i := range rows {
		items = append(items, transactionResp(&rows[i]))
		if !rows[i].IsIncome() {
			total += rows[i].Amount
		}
	}

	util.Success(c, util.Response{
		"items":       items,
		"total_spent": total,
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	deleted, err := h.Txns.Delete(user.ID, uint(id))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete transaction failed")
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}
