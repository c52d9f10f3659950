package cohorts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pulse/internal/shared/constants"
	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the cohort retention controller interface
type Controller interface {
	GetCohorts(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new cohort retention controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetCohorts(c *gin.Context) {
	weeksStr := c.DefaultQuery("weeks", strconv.Itoa(constants.COHORT_DEFAULT_WEEKS))
	weeks, err := strconv.Atoi(weeksStr)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid weeks parameter", nil, err.Error())
		return
	}

	cohorts, err := ctrl.service.GetCohorts(c.Request.Context(), weeks)
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cohort retention retrieved successfully", cohorts, nil)
}
