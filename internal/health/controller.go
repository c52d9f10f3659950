package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pulse/internal/shared/errs"
	"pulse/internal/shared/utils/response"
)

// Controller defines the health scoring controller interface
type Controller interface {
	GetUserHealthScore(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new health scoring controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetUserHealthScore(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	score, err := ctrl.service.GetHealthScore(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", errs.HTTPStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Health score retrieved successfully", score, nil)
}
