package campaigns

import (
	"github.com/gin-gonic/gin"
)

// SetupCampaignRoutes registers the campaign analytics endpoints on the
// admin analytics group.
func SetupCampaignRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.GET("/campaigns/:id/clicks", controller.GetCampaignClicks)
}
