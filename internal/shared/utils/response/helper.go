package response

import "github.com/gin-gonic/gin"

// RespondJSON writes the standard API envelope. Every controller goes through
// it so clients can rely on one response shape across endpoints.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errs interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errs,
	})
}
