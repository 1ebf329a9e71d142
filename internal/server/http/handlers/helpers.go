package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	"github.com/devxankit/Electrici-toys/internal/server/http/dto"
	"github.com/devxankit/Electrici-toys/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated caller from context.
func CurrentActor(c *gin.Context) model.Actor {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := val.(model.Actor)
	return actor
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidRequest),
		errors.Is(err, domainErrors.ErrInvalidLineItem),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrIllegalTransition):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrProductNotFound),
		errors.Is(err, domainErrors.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrGatewayDeclined):
		return http.StatusBadGateway
	case errors.Is(err, domainErrors.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Success: false, Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: message})
}

// rawQuantity turns a JSON number or string into the text the use case
// validates. Anything else becomes an unparsable value.
func rawQuantity(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return trimmed
		}
		return s
	}
	return trimmed
}

func toOrderResponse(order *model.Order) *dto.OrderResponse {
	items := make([]dto.LineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemResponse(item, ""))
	}
	return &dto.OrderResponse{
		ID:                order.ID,
		OrderID:           order.Reference(),
		UserID:            order.UserID,
		Products:          items,
		TotalAmount:       order.TotalAmount.StringFixed(2),
		PaymentMethod:     string(order.PaymentMethod),
		PaymentStatus:     string(order.PaymentStatus),
		TransactionID:     order.TransactionID,
		ShippingAddressID: order.ShippingAddressID,
		OrderStatus:       string(order.Status),
		StatusTimestamps:  timestamps(order.StatusTimestamps),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func toViewResponse(view model.OrderView) dto.OrderResponse {
	items := make([]dto.LineItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, lineItemResponse(item.LineItem, item.ProductName))
	}
	orderID := view.GatewaySessionID
	if orderID == "" {
		orderID = view.ID
	}
	resp := dto.OrderResponse{
		ID:                view.ID,
		OrderID:           orderID,
		UserID:            view.UserID,
		ShippingAddressID: view.ShippingAddressID,
		Products:          items,
		TotalAmount:       view.TotalAmount.StringFixed(2),
		PaymentMethod:     string(view.PaymentMethod),
		PaymentStatus:     string(view.PaymentStatus),
		TransactionID:     view.TransactionID,
		OrderStatus:       string(view.Status),
		StatusTimestamps:  timestamps(view.StatusTimestamps),
		CreatedAt:         view.CreatedAt,
		UpdatedAt:         view.UpdatedAt,
	}
	if c := view.Customer; c != nil {
		resp.User = &dto.CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
	}
	if a := view.ShippingAddress; a != nil {
		resp.ShippingAddress = &dto.AddressResponse{
			ID:         a.ID,
			Line1:      a.Line1,
			Line2:      a.Line2,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		}
	}
	return resp
}

func lineItemResponse(item model.LineItem, name string) dto.LineItemResponse {
	return dto.LineItemResponse{
		ProductID:   item.ProductID,
		ProductName: name,
		Quantity:    item.Quantity,
		Price:       item.UnitPrice.StringFixed(2),
		LineTotal:   item.LineTotal.StringFixed(2),
	}
}

func timestamps(in map[model.OrderStatus]time.Time) map[string]time.Time {
	out := make(map[string]time.Time, len(in))
	for status, at := range in {
		out[string(status)] = at
	}
	return out
}
