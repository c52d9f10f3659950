package campaigns

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the campaign analytics controller interface
type Controller interface {
	GetCampaignClicks(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new campaign analytics controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetCampaignClicks(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid campaign ID", nil, err.Error())
		return
	}

	stats, err := ctrl.service.ClassifyClicks(c.Request.Context(), campaignID)
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Campaign click analytics retrieved successfully", stats, nil)
}
