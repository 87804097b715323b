package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// QueryAudit 审计查询，仅 admin 可用.
func QueryAudit(c *gin.Context) {
	var req types.QueryAuditRequest
	if !bindQuery(c, &req) {
		return
	}

	svc := service.NewDocumentService(c.Request.Context())

	resp, err := svc.QueryAudit(c.Request.Context(), principalFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
