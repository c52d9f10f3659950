package funnel

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pulse/internal/shared/constants"
	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the funnel analysis controller interface
type Controller interface {
	GetFunnel(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new funnel analysis controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetFunnel(c *gin.Context) {
	windowStr := c.DefaultQuery("window_days", strconv.Itoa(constants.FUNNEL_DEFAULT_WINDOW_DAYS))
	windowDays, err := strconv.Atoi(windowStr)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid window_days parameter", nil, err.Error())
		return
	}

	snapshot, err := ctrl.service.AnalyzeFunnel(c.Request.Context(), windowDays)
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Funnel analysis retrieved successfully", snapshot, nil)
}
