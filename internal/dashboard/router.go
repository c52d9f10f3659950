package dashboard

import (
	"github.com/gin-gonic/gin"
)

// SetupDashboardRoutes registers the dashboard endpoint on the admin
// analytics group.
func SetupDashboardRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.GET("/dashboard", controller.GetDashboard)
}
