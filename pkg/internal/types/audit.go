package types

import (
	"time"

	"github.com/yeisme/docvault/pkg/internal/model"
)

// QueryAuditRequest 审计查询过滤条件，全部可选.
type QueryAuditRequest struct {
	Pagination

	UserID     string `form:"user_id"     rule:"omitempty,uuid"`
	Action     string `form:"action"      rule:"omitempty,max=32"`
	DocumentID string `form:"document_id" rule:"omitempty,uuid"`
	// RFC 3339 时间戳
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   *time.Time `form:"to"   time_format:"2006-01-02T15:04:05Z07:00"`
}

// QueryAuditResponse 审计查询结果，按时间倒序.
type QueryAuditResponse struct {
	Entries  []model.AuditLog `json:"entries"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
