package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the dashboard controller interface
type Controller interface {
	GetDashboard(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new dashboard controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDashboard(c *gin.Context) {
	dashboard, err := ctrl.service.GetDashboard(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Dashboard analytics retrieved successfully", dashboard, nil)
}
