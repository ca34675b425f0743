package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ordering-backend/internal/commands"
	"github.com/yungbote/ordering-backend/internal/data/repos"
	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/identity"
	"github.com/yungbote/ordering-backend/internal/pkg/dbctx"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

// RequestIDHeader carries the client-supplied id that makes a command
// retry-safe. Requests without it are rejected on the write endpoints.
const RequestIDHeader = "x-requestid"

type OrderHandler struct {
	bus    *commands.Bus
	orders repos.OrderRepo
	buyers repos.BuyerRepo
	log    *logger.Logger
}

func NewOrderHandler(bus *commands.Bus, orders repos.OrderRepo, buyers repos.BuyerRepo, baseLog *logger.Logger) *OrderHandler {
	return &OrderHandler{
		bus:    bus,
		orders: orders,
		buyers: buyers,
		log:    baseLog.With("handler", "OrderHandler"),
	}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	requestID, ok := h.requestID(c)
	if !ok {
		return
	}
	var cmd commands.CreateOrderCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id := identity.FromContext(c.Request.Context())
	cmd.BuyerIdentity = id.BuyerIdentity
	cmd.BuyerName = id.BuyerName

	out, err := commands.Send[commands.IdentifiedCommand[commands.CreateOrderCommand], domainagg.CreateOrderResult](
		c.Request.Context(), h.bus,
		commands.IdentifiedCommand[commands.CreateOrderCommand]{Command: cmd, RequestID: requestID},
	)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if out.OrderID == uuid.Nil {
		// Replayed request: the original already committed.
		c.JSON(http.StatusOK, gin.H{"duplicate": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order_id": out.OrderID,
		"buyer_id": out.BuyerID,
		"status":   out.Status,
		"total":    out.Total,
	})
}

// Cancel handles PUT /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.sendTransition(c, func(orderID, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
		return commands.Send[commands.IdentifiedCommand[commands.CancelOrderCommand], domainagg.OrderStatusResult](
			c.Request.Context(), h.bus,
			commands.IdentifiedCommand[commands.CancelOrderCommand]{
				Command:   commands.CancelOrderCommand{OrderID: orderID},
				RequestID: requestID,
			},
		)
	})
}

// Ship handles PUT /api/orders/:id/ship.
func (h *OrderHandler) Ship(c *gin.Context) {
	h.sendTransition(c, func(orderID, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
		return commands.Send[commands.IdentifiedCommand[commands.ShipOrderCommand], domainagg.OrderStatusResult](
			c.Request.Context(), h.bus,
			commands.IdentifiedCommand[commands.ShipOrderCommand]{
				Command:   commands.ShipOrderCommand{OrderID: orderID},
				RequestID: requestID,
			},
		)
	})
}

// ConfirmStock handles PUT /api/orders/:id/stock/confirm.
func (h *OrderHandler) ConfirmStock(c *gin.Context) {
	h.sendTransition(c, func(orderID, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
		return commands.Send[commands.IdentifiedCommand[commands.SetStockConfirmedCommand], domainagg.OrderStatusResult](
			c.Request.Context(), h.bus,
			commands.IdentifiedCommand[commands.SetStockConfirmedCommand]{
				Command:   commands.SetStockConfirmedCommand{OrderID: orderID},
				RequestID: requestID,
			},
		)
	})
}

// RejectStock handles PUT /api/orders/:id/stock/reject.
func (h *OrderHandler) RejectStock(c *gin.Context) {
	requestID, ok := h.requestID(c)
	if !ok {
		return
	}
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	var body struct {
		RejectedProductIDs []int64 `json:"rejected_product_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	out, err := commands.Send[commands.IdentifiedCommand[commands.SetStockRejectedCommand], domainagg.OrderStatusResult](
		c.Request.Context(), h.bus,
		commands.IdentifiedCommand[commands.SetStockRejectedCommand]{
			Command: commands.SetStockRejectedCommand{
				OrderID:            orderID,
				RejectedProductIDs: body.RejectedProductIDs,
			},
			RequestID: requestID,
		},
	)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderStatus(c, out)
}

// ConfirmPayment handles PUT /api/orders/:id/pay.
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	h.sendTransition(c, func(orderID, requestID uuid.UUID) (domainagg.OrderStatusResult, error) {
		return commands.Send[commands.IdentifiedCommand[commands.SetPaidCommand], domainagg.OrderStatusResult](
			c.Request.Context(), h.bus,
			commands.IdentifiedCommand[commands.SetPaidCommand]{
				Command:   commands.SetPaidCommand{OrderID: orderID},
				RequestID: requestID,
			},
		)
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	order, err := h.orders.GetByID(dbctx.Context{Ctx: c.Request.Context()}, orderID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// List handles GET /api/orders for the authenticated buyer.
func (h *OrderHandler) List(c *gin.Context) {
	id := identity.FromContext(c.Request.Context())
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	buyer, err := h.buyers.GetByIdentity(dbc, id.BuyerIdentity)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if buyer == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	orders, err := h.orders.ListByBuyer(dbc, buyer.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) sendTransition(c *gin.Context, send func(orderID, requestID uuid.UUID) (domainagg.OrderStatusResult, error)) {
	requestID, ok := h.requestID(c)
	if !ok {
		return
	}
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	out, err := send(orderID, requestID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderStatus(c, out)
}

func (h *OrderHandler) renderStatus(c *gin.Context, out domainagg.OrderStatusResult) {
	if out.OrderID == uuid.Nil {
		c.JSON(http.StatusOK, gin.H{"duplicate": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id": out.OrderID,
		"status":   out.Status,
	})
}

func (h *OrderHandler) requestID(c *gin.Context) (uuid.UUID, bool) {
	return requestIDFrom(c)
}

func (h *OrderHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *OrderHandler) renderError(c *gin.Context, err error) {
	renderAggregateError(c, h.log, err)
}
