package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/canteen-app/models"
	"github.com/yeremiapane/canteen-app/stores"
	"github.com/yeremiapane/canteen-app/utils"
)

type OrderController struct {
	Orders *stores.OrderStore
}

func NewOrderController(orders *stores.OrderStore) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder -> buyer places a pickup order; stock check and decrement
// happen atomically in the store
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body struct {
		ItemID     uint   `json:"item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required"`
		PickupTime string `json:"pickup_time" binding:"required"`
		Notes      string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	buyerID, _ := c.Get("user_id")
	id, ok := buyerID.(uint)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("buyer identity missing"))
		return
	}

	order, err := oc.Orders.PlaceOrder(stores.PlaceOrderInput{
		BuyerID:    id,
		ItemID:     body.ItemID,
		Quantity:   body.Quantity,
		PickupTime: body.PickupTime,
		Notes:      body.Notes,
	})
	if err != nil {
		oc.respondStoreError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s placed: item=%d qty=%d total=%s",
		order.OrderCode, order.ItemID, order.Quantity, utils.FormatAmount(order.TotalAmount))

	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetAllOrders -> sellers see the full ledger, buyers only their own;
// ?status= narrows either view
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	role, _ := c.Get("role")

	if status := c.Query("status"); status != "" {
		if !stores.IsValidStatus(stores.Status(status)) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown order status"))
			return
		}
		orders, err := oc.Orders.OrdersByStatus(stores.Status(status))
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if role != "seller" {
			orders = filterByBuyer(orders, c)
		}
		utils.RespondJSON(c, http.StatusOK, "Orders by status", orders)
		return
	}

	if role == "seller" {
		orders, err := oc.Orders.ListOrders()
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
		return
	}

	userID, _ := c.Get("user_id")
	buyerID, _ := userID.(uint)
	orders, err := oc.Orders.OrdersByBuyer(buyerID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetTodaysOrders -> seller counter view for the current calendar day
func (oc *OrderController) GetTodaysOrders(c *gin.Context) {
	orders, err := oc.Orders.TodaysOrders()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Today's orders", orders)
}

// GetOrderByID
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.GetOrder(uint(id))
	if err != nil {
		oc.respondStoreError(c, err)
		return
	}

	role, _ := c.Get("role")
	if role != "seller" {
		userID, _ := c.Get("user_id")
		if buyerID, ok := userID.(uint); !ok || buyerID != order.BuyerID {
			utils.RespondError(c, http.StatusForbidden, errors.New("order belongs to another buyer"))
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> sellers drive the pipeline; buyers may only cancel
// their own pending order
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	next := stores.Status(body.Status)

	role, _ := c.Get("role")
	if role != "seller" {
		if next != stores.StatusCancelled {
			utils.RespondError(c, http.StatusForbidden, errors.New("buyers may only cancel an order"))
			return
		}
		order, err := oc.Orders.GetOrder(uint(id))
		if err != nil {
			oc.respondStoreError(c, err)
			return
		}
		userID, _ := c.Get("user_id")
		if buyerID, ok := userID.(uint); !ok || buyerID != order.BuyerID {
			utils.RespondError(c, http.StatusForbidden, errors.New("order belongs to another buyer"))
			return
		}
	}

	order, err := oc.Orders.UpdateStatus(uint(id), next)
	if err != nil {
		oc.respondStoreError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// GetPickupSlots -> the finite set of offered slots
func (oc *OrderController) GetPickupSlots(c *gin.Context) {
	slots, err := oc.Orders.PickupSlots()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pickup slots", slots)
}

func (oc *OrderController) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stores.ErrOrderNotFound), errors.Is(err, stores.ErrItemNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, stores.ErrInsufficientStock),
		errors.Is(err, stores.ErrInvalidQuantity),
		errors.Is(err, stores.ErrInvalidPickupTime):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, stores.ErrInvalidTransition):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func filterByBuyer(orders []models.Order, c *gin.Context) []models.Order {
	userID, _ := c.Get("user_id")
	buyerID, _ := userID.(uint)
	out := orders[:0]
	for _, o := range orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out
}
