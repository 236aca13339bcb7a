package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

// StatsService answers the admin dashboard queries. Revenue only counts
// orders that have moved past payment (processing, shipped, delivered).
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

var revenueStatuses = []models.OrderStatus{
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
}

const lowStockThreshold = 5

type OverallStats struct {
	TotalProducts  int64     `json:"total_products"`
	TotalCustomers int64     `json:"total_customers"`
	TotalOrders    int64     `json:"total_orders"`
	TotalRevenue   float64   `json:"total_revenue"`
	LastUpdated    time.Time `json:"last_updated"`
}

type RevenueStats struct {
	TotalRevenue      float64 `json:"total_revenue"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	DailyRevenue      float64 `json:"daily_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

type OrderStats struct {
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	CompletedOrders int64 `json:"completed_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`
}

type ProductStats struct {
	TotalProducts      int64 `json:"total_products"`
	ActiveProducts     int64 `json:"active_products"`
	OutOfStockProducts int64 `json:"out_of_stock_products"`
	LowStockProducts   int64 `json:"low_stock_products"`
}

type CustomerStats struct {
	TotalCustomers        int64 `json:"total_customers"`
	NewCustomersThisMonth int64 `json:"new_customers_this_month"`
	ActiveCustomers       int64 `json:"active_customers"`
}

type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

func (s *StatsService) GetOverallStats() (*OverallStats, error) {
	stats := &OverallStats{LastUpdated: time.Now()}

	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	revenue, err := s.totalRevenue()
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue
	return stats, nil
}

func (s *StatsService) GetRevenueStats() (*RevenueStats, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	total, err := s.totalRevenue()
	if err != nil {
		return nil, err
	}
	monthly, err := s.revenueBetween(startOfMonth, now)
	if err != nil {
		return nil, err
	}
	daily, err := s.revenueBetween(startOfDay, now)
	if err != nil {
		return nil, err
	}

	var avg float64
	err = s.db.Model(&models.Order{}).
		Where("status IN ?", revenueStatuses).
		Select("COALESCE(AVG(total), 0)").Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	return &RevenueStats{
		TotalRevenue:      total,
		MonthlyRevenue:    monthly,
		DailyRevenue:      daily,
		AverageOrderValue: avg,
	}, nil
}

func (s *StatsService) GetOrderStats() (*OrderStats, error) {
	stats := &OrderStats{}
	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	counts := []struct {
		status models.OrderStatus
		dest   *int64
	}{
		{models.OrderStatusPending, &stats.PendingOrders},
		{models.OrderStatusDelivered, &stats.CompletedOrders},
		{models.OrderStatusCancelled, &stats.CancelledOrders},
	}
	for _, c := range counts {
		if err := s.db.Model(&models.Order{}).Where("status = ?", c.status).
			Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *StatsService) GetProductStats() (*ProductStats, error) {
	stats := &ProductStats{}
	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).Where("is_active = ?", true).
		Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).Where("stock = 0").
		Count(&stats.OutOfStockProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).
		Where("stock > 0 AND stock <= ?", lowStockThreshold).
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) GetCustomerStats() (*CustomerStats, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &CustomerStats{}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ? AND created_at >= ?", models.RoleCustomer, startOfMonth).
		Count(&stats.NewCustomersThisMonth).Error; err != nil {
		return nil, err
	}
	// Customers with at least one order.
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Where("EXISTS (SELECT 1 FROM orders WHERE orders.user_id = users.id)").
		Count(&stats.ActiveCustomers).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) GetRevenueTrend(days int) ([]RevenuePoint, error) {
	if days < 1 {
		days = 30
	}
	start := time.Now().AddDate(0, 0, -days)

	var rows []RevenuePoint
	err := s.db.Model(&models.Order{}).
		Select("DATE(created_at) AS date, COALESCE(SUM(total), 0) AS revenue").
		Where("created_at >= ? AND status IN ?", start, revenueStatuses).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []RevenuePoint{}
	}
	return rows, nil
}

func (s *StatsService) totalRevenue() (float64, error) {
	var total float64
	err := s.db.Model(&models.Order{}).
		Where("status IN ?", revenueStatuses).
		Select("COALESCE(SUM(total), 0)").Scan(&total).Error
	return total, err
}

func (s *StatsService) revenueBetween(start, end time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ? AND status IN ?", start, end, revenueStatuses).
		Select("COALESCE(SUM(total), 0)").Scan(&total).Error
	return total, err
}
