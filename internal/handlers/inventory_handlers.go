package handlers

import (
	"errors"
	"net/http"

	"inventory_backend/internal/services"
	"inventory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory adds a category (admin only).
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	category, err := h.inventoryService.AddCategory(req.Name)
	if err != nil {
		if errors.Is(err, services.ErrCategoryExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category already exists.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateCategory: Error from inventoryService.AddCategory")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create category.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategories lists all categories.
func (h *InventoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.inventoryService.ListCategories()
	if err != nil {
		utils.LogError(err, "GetCategories: Error from inventoryService.ListCategories")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list categories.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, categories)
}

// DeleteCategory removes a category (admin only). Items keep their
// category string.
func (h *InventoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid category ID.", err.Error()))
		return
	}

	if err := h.inventoryService.DeleteCategory(categoryID); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", ""))
		} else {
			utils.LogError(err, "DeleteCategory: Error from inventoryService.DeleteCategory")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete category.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateItem adds an item (admin only).
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.AddItem(req)
	if err != nil {
		if errors.Is(err, services.ErrItemExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Item already exists.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateItem: Error from inventoryService.AddItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItems lists items, optionally filtered by ?category=.
func (h *InventoryHandler) GetItems(c *gin.Context) {
	var (
		items interface{}
		err   error
	)
	if category := c.Query("category"); category != "" {
		items, err = h.inventoryService.ListItemsByCategory(category)
	} else {
		items, err = h.inventoryService.ListItems()
	}
	if err != nil {
		utils.LogError(err, "GetItems: Error from inventoryService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, items)
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SetQuantity overwrites an item's quantity (admin correction).
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	itemID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid item ID.", err.Error()))
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.inventoryService.SetQuantity(itemID, *req.Quantity); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "SetQuantity: Error from inventoryService.SetQuantity")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to set quantity.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"item_id": itemID, "quantity": *req.Quantity})
}

type takeRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// TakeItem applies a staff take: bounded decrement plus transaction log
// entry, atomically. The acting user comes from the access token.
func (h *InventoryHandler) TakeItem(c *gin.Context) {
	itemID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid item ID.", err.Error()))
		return
	}

	var req takeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	userIDRaw, exists := c.Get("userID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return
	}
	userID, ok := userIDRaw.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User ID format incorrect.", "Invalid user ID format in context"))
		return
	}

	result, err := h.inventoryService.Take(userID, itemID, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInsufficientStock, "Not enough stock available.", ""))
		} else if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "TakeItem: Error from inventoryService.Take")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to take item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteItem removes an item (admin only).
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	itemID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid item ID.", err.Error()))
		return
	}

	if err := h.inventoryService.DeleteItem(itemID); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", ""))
		} else {
			utils.LogError(err, "DeleteItem: Error from inventoryService.DeleteItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete item.", "Internal error"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLowStockAlerts recomputes the low-stock view from current state.
func (h *InventoryHandler) GetLowStockAlerts(c *gin.Context) {
	alerts, err := h.inventoryService.LowStockAlerts()
	if err != nil {
		utils.LogError(err, "GetLowStockAlerts: Error from inventoryService.LowStockAlerts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute low-stock alerts.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, alerts)
}
