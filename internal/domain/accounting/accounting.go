package accounting

import (
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/search"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

const CategoryContractPayment = "contract_payment"

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(s)); t {
	case TypeIncome, TypeExpense:
		return t, nil
	}
	return "", httperr.ErrBusiness("invalid_type")
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(s)); st {
	case "":
		return StatusCompleted, nil
	case StatusCompleted, StatusPending, StatusCancelled:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func SearchKey(t *models.Transaction) string {
	return search.Key(t.Category, t.Description)
}

type Summary struct {
	Income         int64 `json:"income"`
	Expense        int64 `json:"expense"`
	Profit         int64 `json:"profit"`
	PendingIncome  int64 `json:"pending_income"`
	PendingExpense int64 `json:"pending_expense"`
	Count          int   `json:"count"`
}

type MonthRow struct {
	Month   int   `json:"month"`
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Profit  int64 `json:"profit"`
}

type CategoryRow struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Count    int    `json:"count"`
}

// Summarize totals completed transactions and reports pending ones apart.
// Cancelled transactions are ignored.
func Summarize(txs []models.Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch Status(t.Status) {
		case StatusCompleted:
			s.Count++
			if Type(t.Type) == TypeIncome {
				s.Income += t.Amount
			} else {
				s.Expense += t.Amount
			}
		case StatusPending:
			s.Count++
			if Type(t.Type) == TypeIncome {
				s.PendingIncome += t.Amount
			} else {
				s.PendingExpense += t.Amount
			}
		}
	}
	s.Profit = s.Income - s.Expense
	return s
}

// Monthly returns twelve rows for year, completed transactions only.
func Monthly(txs []models.Transaction, year int, loc *time.Location) []MonthRow {
	rows := make([]MonthRow, 12)
	for i := range rows {
		rows[i].Month = i + 1
	}
	for _, t := range txs {
		if Status(t.Status) != StatusCompleted {
			continue
		}
		d := t.Date.In(loc)
		if d.Year() != year {
			continue
		}
		r := &rows[int(d.Month())-1]
		if Type(t.Type) == TypeIncome {
			r.Income += t.Amount
		} else {
			r.Expense += t.Amount
		}
	}
	for i := range rows {
		rows[i].Profit = rows[i].Income - rows[i].Expense
	}
	return rows
}

// ByCategory groups completed transactions, largest amount first.
func ByCategory(txs []models.Transaction) []CategoryRow {
	idx := map[string]int{}
	var rows []CategoryRow
	for _, t := range txs {
		if Status(t.Status) != StatusCompleted {
			continue
		}
		key := t.Type + "|" + t.Category
		i, ok := idx[key]
		if !ok {
			i = len(rows)
			idx[key] = i
			rows = append(rows, CategoryRow{Type: t.Type, Category: t.Category})
		}
		rows[i].Amount += t.Amount
		rows[i].Count++
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Amount > rows[b].Amount
	})
	return rows
}
