package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/services"
	"restaurant-pos/utils"
)

type ReportController struct {
	Sales *services.SalesService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{Sales: services.NewSalesService(db)}
}

func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s, expected YYYY-MM-DD", name)
	}
	return t, nil
}

// EmployeeSales returns the calling employee's sales summary for
// ?date= (default today, UTC).
func (rc *ReportController) EmployeeSales(c *gin.Context) {
	employeeID, ok := employeeIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	summary, err := rc.Sales.EmployeeSummary(c.Request.Context(), employeeID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee sales summary", summary)
}

// ExportEmployeeSales streams the summary as an xlsx attachment.
func (rc *ReportController) ExportEmployeeSales(c *gin.Context) {
	employeeID, ok := employeeIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	file, err := rc.Sales.ExportEmployeeSummary(c.Request.Context(), employeeID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("sales-%d-%s.xlsx", employeeID, time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := file.Write(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Failed to write sales export: %v", err)
	}
}

// OrdersSummary reports order counts per status plus completed revenue
// over [?from_date, ?to_date), both defaulting to today.
func (rc *ReportController) OrdersSummary(c *gin.Context) {
	from, err := parseDateQuery(c, "from_date")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	to, err := parseDateQuery(c, "to_date")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	summary, err := rc.Sales.Summary(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Orders summary", summary)
}
