package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope for every JSON reply.
type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

// Success writes a 200 reply wrapping extras.
func Success(c *gin.Context, extras any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Code:    http.StatusOK,
		Extras:  extras,
	})
}

// Error writes an error reply with the given status code and message.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success: false,
		Code:    code,
		Extras:  map[string]any{"message": message},
	})
}
