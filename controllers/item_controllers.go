package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/canteen-app/hub"
	"github.com/yeremiapane/canteen-app/stores"
	"github.com/yeremiapane/canteen-app/utils"
)

type ItemController struct {
	Inv *stores.InventoryStore
}

func NewItemController(inv *stores.InventoryStore) *ItemController {
	return &ItemController{Inv: inv}
}

// GetAllItems -> full catalog, optionally filtered by ?category=
func (ic *ItemController) GetAllItems(c *gin.Context) {
	category := c.Query("category")

	if category != "" {
		items, err := ic.Inv.ItemsByCategory(category)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("List of items for category: %s", category), items)
		return
	}

	items, err := ic.Inv.ListItems()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of items", items)
}

// GetItemByID
func (ic *ItemController) GetItemByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	item, err := ic.Inv.GetItem(uint(id))
	if err != nil {
		ic.respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item detail", item)
}

// RestockItem -> seller adds stock, capped at the item's capacity
func (ic *ItemController) RestockItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	if !ic.sellerOwnsItem(c, uint(id)) {
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, clamped, err := ic.Inv.Restock(uint(id), body.Quantity)
	if err != nil {
		ic.respondStoreError(c, err)
		return
	}

	hub.BroadcastStockUpdate(*item)

	msg := "Item restocked"
	if clamped {
		msg = fmt.Sprintf("Item restocked, clamped at capacity %d", item.MaxInventory)
	}
	utils.RespondJSON(c, http.StatusOK, msg, item)
}

// UpdateItemPrice -> seller sets a new unit price (> 0)
func (ic *ItemController) UpdateItemPrice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	if !ic.sellerOwnsItem(c, uint(id)) {
		return
	}

	var body struct {
		Price float64 `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := ic.Inv.SetPrice(uint(id), body.Price)
	if err != nil {
		ic.respondStoreError(c, err)
		return
	}

	hub.BroadcastCatalogUpdate(*item)
	utils.RespondJSON(c, http.StatusOK, "Price updated", item)
}

// ToggleItemAvailability -> flips the flag; items at zero stock stay
// unavailable
func (ic *ItemController) ToggleItemAvailability(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	if !ic.sellerOwnsItem(c, uint(id)) {
		return
	}

	item, err := ic.Inv.ToggleAvailability(uint(id))
	if err != nil {
		ic.respondStoreError(c, err)
		return
	}

	hub.BroadcastCatalogUpdate(*item)
	utils.RespondJSON(c, http.StatusOK, "Availability updated", item)
}

// GetLowStockItems -> seller dashboard list, excludes depleted items
func (ic *ItemController) GetLowStockItems(c *gin.Context) {
	items, err := ic.Inv.LowStockItems()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock items", items)
}

// GetOutOfStockItems
func (ic *ItemController) GetOutOfStockItems(c *gin.Context) {
	items, err := ic.Inv.OutOfStockItems()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Out of stock items", items)
}

// sellerOwnsItem verifies the authenticated seller owns the item. Writes
// the error response itself and returns false when the check fails.
func (ic *ItemController) sellerOwnsItem(c *gin.Context, itemID uint) bool {
	item, err := ic.Inv.GetItem(itemID)
	if err != nil {
		ic.respondStoreError(c, err)
		return false
	}

	userID, _ := c.Get("user_id")
	if sellerID, ok := userID.(uint); !ok || sellerID != item.SellerID {
		utils.RespondError(c, http.StatusForbidden, errors.New("item belongs to another seller"))
		return false
	}
	return true
}

func (ic *ItemController) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stores.ErrItemNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, stores.ErrInvalidQuantity), errors.Is(err, stores.ErrInvalidPrice):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
