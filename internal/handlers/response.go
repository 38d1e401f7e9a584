package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vettia/assessment-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
	Extra any      `json:"extra,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps an error through the apierr taxonomy, attaching any
// extra payload (e.g. a resolution trace) alongside the envelope.
func RespondAPIError(c *gin.Context, err error, extra any) {
	c.JSON(apierr.Status(err), ErrorEnvelope{
		Error: APIError{
			Message: err.Error(),
			Code:    apierr.Code(err),
		},
		Extra: extra,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
