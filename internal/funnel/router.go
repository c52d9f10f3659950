package funnel

import (
	"github.com/gin-gonic/gin"
)

// SetupFunnelRoutes registers the funnel endpoints on the admin analytics
// group.
func SetupFunnelRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.GET("/funnel", controller.GetFunnel)
}
