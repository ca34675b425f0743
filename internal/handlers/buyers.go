package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ordering-backend/internal/commands"
	domainagg "github.com/yungbote/ordering-backend/internal/domain/aggregates"
	"github.com/yungbote/ordering-backend/internal/identity"
	"github.com/yungbote/ordering-backend/internal/pkg/logger"
)

type BuyerHandler struct {
	bus *commands.Bus
	log *logger.Logger
}

func NewBuyerHandler(bus *commands.Bus, baseLog *logger.Logger) *BuyerHandler {
	return &BuyerHandler{
		bus: bus,
		log: baseLog.With("handler", "BuyerHandler"),
	}
}

// VerifyPaymentMethod handles POST /api/buyer/payment-methods.
func (h *BuyerHandler) VerifyPaymentMethod(c *gin.Context) {
	requestID, ok := h.requestID(c)
	if !ok {
		return
	}
	var cmd commands.VerifyPaymentMethodCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id := identity.FromContext(c.Request.Context())
	cmd.BuyerIdentity = id.BuyerIdentity
	cmd.BuyerName = id.BuyerName

	out, err := commands.Send[commands.IdentifiedCommand[commands.VerifyPaymentMethodCommand], domainagg.VerifyPaymentMethodResult](
		c.Request.Context(), h.bus,
		commands.IdentifiedCommand[commands.VerifyPaymentMethodCommand]{Command: cmd, RequestID: requestID},
	)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if out.BuyerID == uuid.Nil {
		// Replayed request: the original already committed.
		c.JSON(http.StatusOK, gin.H{"duplicate": true})
		return
	}
	status := http.StatusOK
	if out.Added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"buyer_id":          out.BuyerID,
		"payment_method_id": out.PaymentMethodID,
		"added":             out.Added,
	})
}

func (h *BuyerHandler) requestID(c *gin.Context) (uuid.UUID, bool) {
	return requestIDFrom(c)
}

func (h *BuyerHandler) renderError(c *gin.Context, err error) {
	renderAggregateError(c, h.log, err)
}
