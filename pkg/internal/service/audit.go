package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/metrics"
)

// recordAudit 在调用方事务内追加一条审计记录.插入失败时返回错误，
// 令整个事务回滚：业务变更与审计记录要么同时提交要么同时消失.
func recordAudit(tx *gorm.DB, userID string, action model.AuditAction,
	documentID *string, documentVersion *int, extra map[string]any,
) error {
	if !action.Valid() {
		return apperr.Validation(fmt.Sprintf("unknown audit action: %s", action))
	}

	meta := "{}"

	if len(extra) > 0 {
		b, err := sonic.Marshal(extra)
		if err != nil {
			return apperr.Storage("marshal audit metadata", err)
		}

		meta = string(b)
	}

	entry := model.AuditLog{
		UserID:          userID,
		Action:          action,
		DocumentID:      documentID,
		DocumentVersion: documentVersion,
		Metadata:        meta,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return apperr.Storage("insert audit entry", err)
	}

	metrics.AuditRecordCounter.WithLabelValues(string(action)).Inc()

	return nil
}

// QueryAudit 查询审计记录，仅 admin 可用，按时间倒序分页.
func (s *DocumentService) QueryAudit(ctx context.Context, p *auth.Principal,
	req *types.QueryAuditRequest,
) (*types.QueryAuditResponse, error) {
	if err := auth.Require(p, auth.ActionRead); err != nil {
		return nil, err
	}

	// 审计历史只对 admin 开放
	if p.Role != model.RoleAdmin {
		return nil, apperr.Authorization("audit query requires admin role")
	}

	req.Normalize()

	q := s.dbClient.WithContext(ctx).Model(&model.AuditLog{})

	if req.UserID != "" {
		q = q.Where("user_id = ?", req.UserID)
	}

	if req.Action != "" {
		if !model.AuditAction(req.Action).Valid() {
			return nil, apperr.Validation(fmt.Sprintf("unknown audit action: %s", req.Action))
		}

		q = q.Where("action = ?", req.Action)
	}

	if req.DocumentID != "" {
		q = q.Where("document_id = ?", req.DocumentID)
	}

	if req.From != nil {
		q = q.Where("created_at >= ?", *req.From)
	}

	if req.To != nil {
		q = q.Where("created_at <= ?", *req.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Storage("count audit entries", err)
	}

	var entries []model.AuditLog
	if err := q.Order("created_at DESC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&entries).Error; err != nil {
		return nil, apperr.Storage("query audit entries", err)
	}

	return &types.QueryAuditResponse{
		Entries:  entries,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}
