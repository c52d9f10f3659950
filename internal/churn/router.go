package churn

import (
	"github.com/gin-gonic/gin"
)

// SetupChurnRoutes registers the churn-risk endpoints on the admin analytics
// group.
func SetupChurnRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.GET("/churn-risks", controller.GetChurnRisks)
}
