package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the standard API envelope. err may be nil, a plain error or an
// *errors.Error; only its message is exposed to the client.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}

	responsedata := gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	}

	c.JSON(status, responsedata)
}
