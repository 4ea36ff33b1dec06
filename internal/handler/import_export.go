package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/models"
	"github.com/WatsonMulkey/The-Number/internal/store"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ImportExportHandler moves expenses and transactions in and out as
// CSV or XLSX.
type ImportExportHandler struct {
	Expenses *store.ExpenseStore
	Txns     *store.TransactionStore
}

func NewImportExportHandler(expenses *store.ExpenseStore, txns *store.TransactionStore) *ImportExportHandler {
	return &ImportExportHandler{Expenses: expenses, Txns: txns}
}

var expenseHeaders = []string{"Name", "Amount", "Fixed"}
var transactionHeaders = []string{"Date", "Amount", "Description", "Category"}

// ---------- expense export ----------

func (h *ImportExportHandler) ExportExpensesCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.Expenses.List(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list expenses failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(expenseHeaders)
	for _, e := range rows {
		writer.Write([]string{
			e.Name,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			strconv.FormatBool(e.IsFixed),
		})
	}
}

func (h *ImportExportHandler) ExportExpensesXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.Expenses.List(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list expenses failed")
		return
	}

	f := excelize.NewFile()
	sheetName := "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, head := range expenseHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}
	for idx, e := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.IsFixed)
	}

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "C", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}

// ---------- expense import ----------

// ImportExpenses reads an uploaded CSV or XLSX file. With ?replace=true
// the upload replaces the current expense list; the default appends.
func (h *ImportExportHandler) ImportExpenses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "open upload failed")
		return
	}
	defer file.Close()

	var records [][]string
	name := strings.ToLower(fileHeader.Filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		records, err = readCSV(file)
	case strings.HasSuffix(name, ".xlsx"):
		records, err = readXLSX(file)
	default:
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "file must be .csv or .xlsx")
		return
	}
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "could not parse file: "+err.Error())
		return
	}

	var imported []models.Expense
	for i, rec := range records {
		if i == 0 && isExpenseHeader(rec) {
			continue
		}
		if len(rec) < 2 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				fmt.Sprintf("row %d: want at least name and amount", i+1))
			return
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				fmt.Sprintf("row %d: invalid amount %q", i+1, rec[1]))
			return
		}
		fixed := false
		if len(rec) > 2 {
			fixed, _ = strconv.ParseBool(strings.TrimSpace(rec[2]))
		}
		imported = append(imported, models.Expense{
			Name:    strings.TrimSpace(rec[0]),
			Amount:  amount,
			IsFixed: fixed,
		})
	}

	if c.Query("replace") == "true" {
		if err := h.Expenses.ReplaceAll(user.ID, imported); err != nil {
			writeStoreErr(c, err)
			return
		}
	} else {
		for _, e := range imported {
			if _, err := h.Expenses.Create(user.ID, e.Name, e.Amount, e.IsFixed); err != nil {
				writeStoreErr(c, err)
				return
			}
		}
	}

	util.Success(c, util.Response{
		"message":  "imported",
		"imported": len(imported),
	})
}

// ---------- transaction export ----------

func (h *ImportExportHandler) ExportTransactionsCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.Txns.List(user.ID, 0)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list transactions failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(transactionHeaders)
	for _, t := range rows {
		writer.Write([]string{
			t.Date.Format(time.RFC3339),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Description,
			t.Category,
		})
	}
}

func (h *ImportExportHandler) ExportTransactionsXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.Txns.List(user.ID, 0)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list transactions failed")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, head := range transactionHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}
	for idx, t := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Date.Format(time.RFC3339))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Category)
	}

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 15)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}

// ---------- shared readers ----------

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func isExpenseHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name")
}
