package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/validation"
	"github.com/anshc022/suraksha-ai-service/pkg/response"
)

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		reject(c, err)
		return false
	}
	return true
}

// bindQuery is bindJSON for the query string.
func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		reject(c, err)
		return false
	}
	return true
}

func reject(c *gin.Context, err error) {
	desc := validation.Describe(err)
	logging.Ctx(c.Request.Context()).Debug().Str("path", c.FullPath()).Msg(desc.Error())
	response.BadRequest(c, desc.Error())
}
