package recompute

import (
	"github.com/gin-gonic/gin"
)

// SetupRecomputeRoutes registers the recompute endpoints on the admin
// analytics group.
func SetupRecomputeRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.POST("/recompute", controller.TriggerRecompute)
	admin.GET("/recompute/status", controller.GetRecomputeStatus)
}
