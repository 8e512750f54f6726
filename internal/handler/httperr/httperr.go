package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the public error body: {"error":{"message","code"},"detail"}.
// Code is set for outcomes clients branch on, such as a taken slot.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError keeps err on the gin context for the logging middleware and
// writes only msg and detail to the client.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, err, "", msg, detail)
}

func AbortWithCode(c *gin.Context, status int, err error, code, msg string) {
	abort(c, status, err, code, msg, nil)
}

func abort(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("httperr: abort without error")
	}

	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	resp.Error.Code = code

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
