package webhookControllers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexon-digital/storefront-api/external/payments"
	"github.com/nexon-digital/storefront-api/services"
)

// Stripe retries deliveries on non-2xx, so unrecognized event types are
// acknowledged rather than rejected.

// POST /webhooks/stripe
func StripeWebhook(gateway *payments.Client, orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		event, err := gateway.ConstructEvent(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}

		switch event.Type {
		case "checkout.session.completed":
			orderID := event.Data.Object.ClientReferenceID
			if orderID == "" {
				orderID = event.Data.Object.Metadata["orderId"]
			}
			if orderID == "" {
				log.Printf("stripe webhook: %s without order reference", event.Type)
				break
			}
			if err := orders.MarkAsPaid(orderID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
				return
			}
		case "payment_intent.succeeded":
			if orderID := event.Data.Object.Metadata["orderId"]; orderID != "" {
				if err := orders.MarkAsPaid(orderID); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
					return
				}
			}
		default:
			log.Printf("stripe webhook: ignoring event type %s", event.Type)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
