package health

import (
	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes registers the health-score endpoints on the admin
// analytics group.
func SetupHealthRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.GET("/users/:id/health", controller.GetUserHealthScore)
}
