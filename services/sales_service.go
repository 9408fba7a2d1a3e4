package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"restaurant-pos/models"
)

// SalesService is the read side over completed orders. Day boundaries
// are UTC calendar days: [00:00, next day 00:00).
type SalesService struct {
	DB *gorm.DB
}

func NewSalesService(db *gorm.DB) *SalesService {
	return &SalesService{DB: db}
}

type SalesOrder struct {
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	ItemCount   int       `json:"item_count"`
}

type EmployeeSalesSummary struct {
	EmployeeID   uint         `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Date         time.Time    `json:"date"`
	TotalAmount  float64      `json:"total_amount"`
	TotalOrders  int          `json:"total_orders"`
	TotalItems   int          `json:"total_items"`
	Orders       []SalesOrder `json:"orders"`
}

type OrdersSummary struct {
	TotalOrders      int       `json:"total_orders"`
	PendingOrders    int       `json:"pending_orders"`
	InProgressOrders int       `json:"in_progress_orders"`
	CompletedOrders  int       `json:"completed_orders"`
	CancelledOrders  int       `json:"cancelled_orders"`
	TotalRevenue     float64   `json:"total_revenue"`
	FromDate         time.Time `json:"from_date"`
	ToDate           time.Time `json:"to_date"`
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// EmployeeSummary aggregates an employee's completed orders for one day.
func (s *SalesService) EmployeeSummary(ctx context.Context, employeeID uint, date time.Time) (*EmployeeSalesSummary, error) {
	var employee models.Employee
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", employeeID, false).
		First(&employee).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundf("employee %d not found", employeeID)
		}
		return nil, err
	}

	start, end := dayBounds(date)

	var orders []models.Order
	err = s.DB.WithContext(ctx).
		Preload("Items").
		Where("employee_id = ? AND is_deleted = ? AND status = ? AND created_at >= ? AND created_at < ?",
			employeeID, false, models.OrderStatusCompleted, start, end).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	summary := &EmployeeSalesSummary{
		EmployeeID:   employee.ID,
		EmployeeName: employee.FullName,
		Date:         start,
		Orders:       make([]SalesOrder, 0, len(orders)),
	}
	for _, order := range orders {
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		summary.TotalAmount += order.TotalAmount
		summary.TotalOrders++
		summary.TotalItems += itemCount
		summary.Orders = append(summary.Orders, SalesOrder{
			OrderID:     order.ID,
			OrderNumber: order.Number,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
			ItemCount:   itemCount,
		})
	}
	return summary, nil
}

// Summary counts orders by status and sums completed revenue over
// [from, to). Both bounds default to today.
func (s *SalesService) Summary(ctx context.Context, from, to time.Time) (*OrdersSummary, error) {
	today, tomorrow := dayBounds(time.Time{})
	if from.IsZero() {
		from = today
	}
	if to.IsZero() {
		to = tomorrow
	}
	if !to.After(from) {
		return nil, Validationf("to_date must be after from_date")
	}

	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Where("is_deleted = ? AND created_at >= ? AND created_at < ?", false, from, to).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	summary := &OrdersSummary{FromDate: from, ToDate: to}
	for _, order := range orders {
		summary.TotalOrders++
		switch order.Status {
		case models.OrderStatusPending:
			summary.PendingOrders++
		case models.OrderStatusInProgress:
			summary.InProgressOrders++
		case models.OrderStatusCompleted:
			summary.CompletedOrders++
			summary.TotalRevenue += order.TotalAmount
		case models.OrderStatusCancelled:
			summary.CancelledOrders++
		}
	}
	return summary, nil
}

// ExportEmployeeSummary renders an employee's daily sales as an xlsx
// workbook.
func (s *SalesService) ExportEmployeeSummary(ctx context.Context, employeeID uint, date time.Time) (*excelize.File, error) {
	summary, err := s.EmployeeSummary(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Sales"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Employee")
	f.SetCellValue(sheet, "B1", summary.EmployeeName)
	f.SetCellValue(sheet, "A2", "Date")
	f.SetCellValue(sheet, "B2", summary.Date.Format("2006-01-02"))

	headers := []string{"Order Number", "Created At", "Items", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
	}

	row := 5
	for _, order := range summary.Orders {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), order.OrderNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), order.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), order.ItemCount)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), order.TotalAmount)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total orders")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.TotalOrders)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total items")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.TotalItems)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total amount")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.TotalAmount)

	return f, nil
}
