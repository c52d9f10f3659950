package segments

import (
	"github.com/gin-gonic/gin"
)

// SetupSegmentRoutes registers the segmentation endpoints on the admin
// analytics group. Auth and rate limiting are applied by the group.
func SetupSegmentRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.GET("/users/:id/segment", controller.GetUserSegment)
}
