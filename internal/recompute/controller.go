package recompute

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the recompute controller interface
type Controller interface {
	TriggerRecompute(c *gin.Context)
	GetRecomputeStatus(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service   Service
	processor *JobProcessor
}

// NewController creates a new recompute controller instance
func NewController(service Service, processor *JobProcessor) Controller {
	return &controller{service: service, processor: processor}
}

func (ctrl *controller) TriggerRecompute(c *gin.Context) {
	summary, err := ctrl.service.RunPass(c.Request.Context(), TriggerManual)
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Recompute pass completed successfully", summary, nil)
}

func (ctrl *controller) GetRecomputeStatus(c *gin.Context) {
	var status interface{}
	if ctrl.processor != nil {
		status = ctrl.processor.GetJobStatus()
	} else if last := ctrl.service.LastSummary(); last != nil {
		status = last
	}

	response.RespondJSON(c, "success", http.StatusOK, "Recompute status retrieved successfully", status, nil)
}
