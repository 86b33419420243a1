package analytics

import (
	"sort"
	"time"

	"go-resale-ops/internal/model"
)

type ProductStat struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"` // share of in-range item sales
}

type ClientStat struct {
	Name   string  `json:"name"`
	Orders int     `json:"orders"`
	Total  float64 `json:"total"`
}

type ExpenseStat struct {
	model.Expense
	Percentage float64 `json:"percentage"` // share of in-range expense total
}

type FinancialSummary struct {
	Gross        float64 `json:"gross"`
	ExpenseTotal float64 `json:"expense_total"`
	Net          float64 `json:"net"`
	Margin       float64 `json:"margin"`       // percent, only meaningful when MarginValid
	MarginValid  bool    `json:"margin_valid"` // false when gross is zero
}

type Report struct {
	Range       string           `json:"range"`
	Products    []ProductStat    `json:"products"`
	BestClients []ClientStat     `json:"best_clients"`
	Expenses    []ExpenseStat    `json:"expenses"`
	Summary     FinancialSummary `json:"summary"`
}

// ComputeReport builds the report-page aggregates for the selected window.
// Empty in-range sets produce empty (not nil) slices and a zero summary.
func ComputeReport(snap Snapshot, rng Range, now time.Time) Report {
	orders := make([]model.Order, 0)
	for _, order := range snap.Orders {
		if rng.contains(order.CreatedAt, now) {
			orders = append(orders, order)
		}
	}
	expenses := make([]model.Expense, 0)
	for _, expense := range snap.Expenses {
		if rng.contains(expense.Date, now) {
			expenses = append(expenses, expense)
		}
	}

	report := Report{
		Range:       rng.String(),
		Products:    productStats(orders),
		BestClients: bestClients(orders),
		Expenses:    expenseStats(expenses),
	}

	for _, order := range orders {
		report.Summary.Gross += order.Total
	}
	for _, expense := range expenses {
		report.Summary.ExpenseTotal += expense.Amount
	}
	report.Summary.Net = report.Summary.Gross - report.Summary.ExpenseTotal
	if report.Summary.Gross > 0 {
		report.Summary.Margin = report.Summary.Net / report.Summary.Gross * 100
		report.Summary.MarginValid = true
	}

	return report
}

func productStats(orders []model.Order) []ProductStat {
	index := make(map[string]int)
	stats := make([]ProductStat, 0)
	var totalSales float64
	for _, order := range orders {
		for _, item := range order.Items {
			i, ok := index[item.ProductName]
			if !ok {
				i = len(stats)
				index[item.ProductName] = i
				stats = append(stats, ProductStat{Name: item.ProductName})
			}
			stats[i].Quantity += item.Quantity
			stats[i].Total += item.Subtotal
			totalSales += item.Subtotal
		}
	}
	for i := range stats {
		if totalSales > 0 {
			stats[i].Percentage = stats[i].Total / totalSales * 100
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	return stats
}

func bestClients(orders []model.Order) []ClientStat {
	index := make(map[string]int)
	stats := make([]ClientStat, 0)
	for i := range orders {
		name := clientName(&orders[i])
		j, ok := index[name]
		if !ok {
			j = len(stats)
			index[name] = j
			stats = append(stats, ClientStat{Name: name})
		}
		stats[j].Orders++
		stats[j].Total += orders[i].Total
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total > stats[j].Total
	})
	return stats
}

func expenseStats(expenses []model.Expense) []ExpenseStat {
	var total float64
	for _, expense := range expenses {
		total += expense.Amount
	}
	stats := make([]ExpenseStat, 0, len(expenses))
	for _, expense := range expenses {
		stat := ExpenseStat{Expense: expense}
		if total > 0 {
			stat.Percentage = expense.Amount / total * 100
		}
		stats = append(stats, stat)
	}
	return stats
}
