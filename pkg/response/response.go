package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "voice-task-board/pkg/errors"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Error renders err. An *errors.HTTPError keeps its own status and message;
// anything else is treated as a request validation failure.
func Error(c *gin.Context, err error) {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	c.JSON(http.StatusBadRequest, Resp{
		ErrorCode: ValidationErrorCode,
		Message:   err.Error(),
	})
}

// ErrorWithDetails is Error plus a details payload in the errors field.
func ErrorWithDetails(c *gin.Context, err error, details any) {
	status, code, msg := http.StatusBadRequest, ValidationErrorCode, err.Error()
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		status, code, msg = httpErr.StatusCode, httpErr.Code, httpErr.Message
	}
	c.JSON(status, Resp{
		ErrorCode: code,
		Message:   msg,
		Errors:    details,
	})
}

// InternalError sends 500 internal server error.
func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
	})
}

// TooManyRequests sends 429.
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Resp{
		ErrorCode: http.StatusTooManyRequests,
		Message:   "Too many requests",
	})
}
