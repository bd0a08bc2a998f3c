package httperr

import "github.com/gin-gonic/gin"

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Code: code, Message: message})
}

// Abort maps err like FromError and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, code, message := Status(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}
