package response

import "github.com/gin-gonic/gin"

// Success writes the standard success envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     "success",
		StatusCode: code,
		Message:    message,
		Data:       data,
	})
}

// Error writes the standard error envelope.
func Error(c *gin.Context, code int, message string, errs interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     "error",
		StatusCode: code,
		Message:    message,
		Errors:     errs,
	})
}
