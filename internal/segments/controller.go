package segments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the segmentation controller interface
type Controller interface {
	GetUserSegment(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new segmentation controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetUserSegment(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	result, err := ctrl.service.GetSegment(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "User segment retrieved successfully", result, nil)
}
