package churn

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the churn-risk controller interface
type Controller interface {
	GetChurnRisks(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new churn-risk controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetChurnRisks(c *gin.Context) {
	tierFilter := c.Query("tier")

	flags, err := ctrl.service.DetectChurnRisks(c.Request.Context(), tierFilter)
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Churn risks retrieved successfully", flags, nil)
}
