package opportunities

import (
	"github.com/gin-gonic/gin"
)

// SetupOpportunityRoutes registers the conversion-opportunity endpoints on
// the admin analytics group.
func SetupOpportunityRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.GET("/opportunities", controller.GetOpportunities)
}
