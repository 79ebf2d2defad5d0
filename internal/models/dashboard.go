package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleMetrics aggregates sales figures for one event, as computed by the
// ticketing API's dashboard endpoint.
type SaleMetrics struct {
	TotalSales    int             `json:"total_sales"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	PaidSales     int             `json:"paid_sales"`
	CanceledSales int             `json:"canceled_sales"`

	TodaySales   int             `json:"today_sales"`
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	WeekSales    int             `json:"week_sales"`
	WeekRevenue  decimal.Decimal `json:"week_revenue"`
	MonthSales   int             `json:"month_sales"`
	MonthRevenue decimal.Decimal `json:"month_revenue"`
}

// ProductSalesStats breaks sales down per ticket type
type ProductSalesStats struct {
	ProductID           int             `json:"product_id"`
	ProductName         string          `json:"product_name"`
	TotalSales          int             `json:"total_sales"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	PercentageOfSales   float64         `json:"percentage_of_sales"`
	PercentageOfRevenue float64         `json:"percentage_of_revenue"`
	StockRemaining      *int            `json:"stock_remaining"`
}

// EventDashboard is the full metrics view for one event
type EventDashboard struct {
	EventID      int                 `json:"event_id"`
	EventName    string              `json:"event_name"`
	EventStatus  string              `json:"event_status"`
	EventDate    *time.Time          `json:"event_date"`
	SalesMetrics SaleMetrics         `json:"sales_metrics"`
	ProductStats []ProductSalesStats `json:"product_stats"`
}

// CheckinProgress summarizes the check-in state of one event's roster
type CheckinProgress struct {
	TotalSales int `json:"total_sales"`
	CheckedIn  int `json:"checked_in"`
	Pending    int `json:"pending"`
	Canceled   int `json:"canceled"`
}
