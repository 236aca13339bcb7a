package routes

import (
	"github.com/gin-gonic/gin"

	webhookControllers "github.com/nexon-digital/storefront-api/controllers/webhook"
)

// SetupWebhookRoutes registers the payment provider callbacks. These are
// authenticated by signature verification over the raw body, not by JWT.
func SetupWebhookRoutes(r *gin.Engine, deps *Deps) {
	webhookGroup := r.Group("/webhooks")
	{
		webhookGroup.POST("/stripe", webhookControllers.StripeWebhook(deps.Payments, deps.Orders))
	}
}
