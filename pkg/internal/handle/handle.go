// Package handle 提供 HTTP 请求处理器，将请求绑定校验后转交 service 层，
// 并把 apperr 错误类别映射为 HTTP 状态码.
package handle

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yeisme/docvault/pkg/apperr"
	ctxPkg "github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/auth"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/rule"
)

// principalFrom 取出认证中间件注入的主体.
func principalFrom(c *gin.Context) *auth.Principal {
	return ctxPkg.GetPrincipal(c.Request.Context())
}

// writeError 按错误类别返回 HTTP 响应；存储类错误只记日志不外泄细节.
func writeError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperr.KindStorage {
			nlog.Logger().Error().Err(err).Str("path", c.FullPath()).Msg("storage failure")
			c.JSON(status, gin.H{"error": "internal error"})

			return
		}

		c.JSON(status, gin.H{"error": appErr.Msg, "kind": string(appErr.Kind)})

		return
	}

	nlog.Logger().Error().Err(err).Str("path", c.FullPath()).Msg("unclassified failure")
	c.JSON(status, gin.H{"error": "internal error"})
}

// bindJSON 绑定并按 rule tag 校验 JSON 请求体.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		writeError(c, apperr.Validation(err.Error()))
		return false
	}

	if err := rule.ValidateStruct(obj); err != nil {
		writeError(c, apperr.Validation(validationMsg(err)))
		return false
	}

	return true
}

// bindQuery 绑定并校验查询参数.
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		writeError(c, apperr.Validation(err.Error()))
		return false
	}

	if err := rule.ValidateStruct(obj); err != nil {
		writeError(c, apperr.Validation(validationMsg(err)))
		return false
	}

	return true
}

func validationMsg(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Error()
	}

	return err.Error()
}
