package analytics

import (
	"sort"
	"time"

	"go-resale-ops/internal/model"
)

type DailyRevenue struct {
	Label string  `json:"label"` // dd/MM
	Value float64 `json:"value"`
}

type ProductRank struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ClientRank struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type DashboardStats struct {
	TotalClients    int            `json:"total_clients"`
	TotalOrders     int            `json:"total_orders"`
	TotalRevenue    float64        `json:"total_revenue"`
	MonthlyRevenue  float64        `json:"monthly_revenue"` // current calendar month
	WeeklyRevenue   []DailyRevenue `json:"weekly_revenue"`  // 7 days, oldest first, today inclusive
	TopProducts     []ProductRank  `json:"top_products"`
	TopClients      []ClientRank   `json:"top_clients"`
	InactiveClients []model.Client `json:"inactive_clients"`
}

const topN = 5
const inactivityLookbackDays = 30

// ComputeDashboard builds the landing-page figures. Revenue rollups and the
// weekly series come from revenue entries; top products and clients come from
// orders and their items.
func ComputeDashboard(snap Snapshot, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalClients:  len(snap.Clients),
		TotalOrders:   len(snap.Orders),
		WeeklyRevenue: make([]DailyRevenue, 0, 7),
	}

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, entry := range snap.Revenue {
		stats.TotalRevenue += entry.Amount
		if !entry.Date.Before(startOfMonth) {
			stats.MonthlyRevenue += entry.Amount
		}
	}

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		point := DailyRevenue{Label: day.Format("02/01")}
		for _, entry := range snap.Revenue {
			if sameDay(entry.Date, day) {
				point.Value += entry.Amount
			}
		}
		stats.WeeklyRevenue = append(stats.WeeklyRevenue, point)
	}

	stats.TopProducts = topProducts(snap.Orders)
	stats.TopClients = topClients(snap.Orders)
	stats.InactiveClients = InactiveClients(snap, now)

	return stats
}

// topProducts ranks product names by units sold across all orders. The sort is
// stable, so ties keep first-encountered order.
func topProducts(orders []model.Order) []ProductRank {
	index := make(map[string]int)
	ranks := make([]ProductRank, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			i, ok := index[item.ProductName]
			if !ok {
				i = len(ranks)
				index[item.ProductName] = i
				ranks = append(ranks, ProductRank{Name: item.ProductName})
			}
			ranks[i].Quantity += item.Quantity
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Quantity > ranks[j].Quantity
	})
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	return ranks
}

func topClients(orders []model.Order) []ClientRank {
	index := make(map[string]int)
	ranks := make([]ClientRank, 0)
	for i := range orders {
		name := clientName(&orders[i])
		j, ok := index[name]
		if !ok {
			j = len(ranks)
			index[name] = j
			ranks = append(ranks, ClientRank{Name: name})
		}
		ranks[j].Total += orders[i].Total
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Total > ranks[j].Total
	})
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	return ranks
}

// InactiveClients lists clients with no order in the last 30 days. The
// lookback is fixed regardless of the selected report range; the result is
// capped for display.
func InactiveClients(snap Snapshot, now time.Time) []model.Client {
	cutoff := now.AddDate(0, 0, -inactivityLookbackDays)
	active := make(map[string]bool)
	for _, order := range snap.Orders {
		if order.CreatedAt.After(cutoff) {
			active[order.ClientID.String()] = true
		}
	}
	inactive := make([]model.Client, 0)
	for _, client := range snap.Clients {
		if active[client.ID.String()] {
			continue
		}
		inactive = append(inactive, client)
		if len(inactive) == topN {
			break
		}
	}
	return inactive
}
