package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/services"
	"restaurant-pos/utils"
)

type MenuItemController struct {
	Catalog *services.CatalogService
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	return &MenuItemController{Catalog: services.NewCatalogService(db)}
}

func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	var input services.CreateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Catalog.CreateMenuItem(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// GetAllMenuItems lists items, optionally filtered by ?kind= and
// ?available_only=true.
func (mc *MenuItemController) GetAllMenuItems(c *gin.Context) {
	kind := models.ItemKind(c.Query("kind"))
	availableOnly := c.Query("available_only") == "true"

	items, err := mc.Catalog.ListMenuItems(c.Request.Context(), kind, availableOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	item, err := mc.Catalog.GetMenuItem(c.Request.Context(), itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	var input services.UpdateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Catalog.UpdateMenuItem(c.Request.Context(), itemID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	if err := mc.Catalog.DeleteMenuItem(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": itemID})
}
