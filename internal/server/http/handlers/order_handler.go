package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devxankit/Electrici-toys/internal/server/http/dto"
	"github.com/devxankit/Electrici-toys/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed order payload")
		return
	}

	items := make([]usecase.LineItemInput, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, usecase.LineItemInput{
			ProductID: strings.TrimSpace(p.ProductID),
			Quantity:  rawQuantity(p.Quantity),
		})
	}

	actor := CurrentActor(c)
	order, err := h.facade.PlaceOrder(c.Request.Context(), usecase.PlaceOrderInput{
		UserID:            actor.UserID,
		Items:             items,
		ShippingAddressID: strings.TrimSpace(req.ShippingAddressID),
		PaymentMethod:     req.PaymentMethod,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OrderEnvelope{
		Success: true,
		Message: "Order created successfully",
		Order:   toOrderResponse(order),
	})
}

// VerifyPayment handles POST /api/orders/verify-payment.
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed payment payload")
		return
	}

	order, err := h.facade.VerifyPayment(c.Request.Context(), strings.TrimSpace(req.OrderID), req.TransactionID, req.PaymentStatus)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderEnvelope{
		Success: true,
		Message: "Payment verified",
		Order:   toOrderResponse(order),
	})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	views, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(views))
	for _, v := range views {
		response = append(response, toViewResponse(v))
	}
	c.JSON(http.StatusOK, dto.OrderListEnvelope{Success: true, Total: len(response), Orders: response})
}

// ListOwn handles GET /api/orders/user.
func (h *OrderHandler) ListOwn(c *gin.Context) {
	views, err := h.facade.UserOrders(c.Request.Context(), CurrentActor(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(views))
	for _, v := range views {
		response = append(response, toViewResponse(v))
	}
	c.JSON(http.StatusOK, dto.OrderListEnvelope{Success: true, Total: len(response), Orders: response})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	view, err := h.facade.Order(c.Request.Context(), c.Param("id"), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toViewResponse(*view)
	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: &resp})
}

// UpdateStatus handles PUT /api/orders/update-status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed status payload")
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), strings.TrimSpace(req.OrderID), req.NewStatus)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderEnvelope{
		Success: true,
		Message: fmt.Sprintf("Order status updated to '%s'", order.Status),
		Order:   toOrderResponse(order),
	})
}

// Cancel handles PUT /api/orders/cancel-order.
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed cancel payload")
		return
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), strings.TrimSpace(req.OrderID), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderEnvelope{
		Success: true,
		Message: "Order cancelled successfully",
		Order:   toOrderResponse(order),
	})
}
