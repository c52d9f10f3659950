package cohorts

import (
	"github.com/gin-gonic/gin"
)

// SetupCohortRoutes registers the cohort retention endpoints on the admin
// analytics group.
func SetupCohortRoutes(admin *gin.RouterGroup, controller Controller) {
	admin.GET("/cohorts", controller.GetCohorts)
}
