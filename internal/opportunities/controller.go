package opportunities

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the conversion-opportunity controller interface
type Controller interface {
	GetOpportunities(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new conversion-opportunity controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetOpportunities(c *gin.Context) {
	opportunities, err := ctrl.service.FindOpportunities(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Conversion opportunities retrieved successfully", opportunities, nil)
}
