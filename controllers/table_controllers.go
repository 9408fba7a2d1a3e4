package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/services"
	"restaurant-pos/utils"
)

type TableController struct {
	Catalog *services.CatalogService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{Catalog: services.NewCatalogService(db)}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, strconv.ErrSyntax)
		return 0, false
	}
	return uint(id), true
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var input services.CreateTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Catalog.CreateTable(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table created",
		toTableResponse(&services.TableInfo{Table: *table, IsAvailable: table.IsAvailable}))
}

// GetAllTables lists tables with availability projected from active
// orders. ?include_unavailable=true also shows tables taken out of
// service.
func (tc *TableController) GetAllTables(c *gin.Context) {
	includeUnavailable := c.Query("include_unavailable") == "true"

	infos, err := tc.Catalog.ListTables(c.Request.Context(), includeUnavailable)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]TableResponse, 0, len(infos))
	for i := range infos {
		resp = append(resp, toTableResponse(&infos[i]))
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", resp)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	info, err := tc.Catalog.GetTable(c.Request.Context(), tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", toTableResponse(info))
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	var input services.UpdateTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Catalog.UpdateTable(c.Request.Context(), tableID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Re-read so the response carries the projected availability.
	info, err := tc.Catalog.GetTable(c.Request.Context(), table.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", toTableResponse(info))
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	if err := tc.Catalog.DeleteTable(c.Request.Context(), tableID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": tableID})
}
