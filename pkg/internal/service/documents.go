package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
)

// CreateDocument 创建不带文件的逻辑文档.
func (s *DocumentService) CreateDocument(ctx context.Context, p *auth.Principal,
	req *types.CreateDocumentRequest,
) (*model.Document, error) {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	doc := model.Document{
		Title:    title,
		Category: req.Category,
	}

	err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return apperr.Storage("create document", err)
		}

		return recordAudit(tx, p.UserID, model.ActionUpload, &doc.ID, nil,
			map[string]any{"title": doc.Title})
	})
	if err != nil {
		return nil, err
	}

	nlog.Logger().Info().Str("document_id", doc.ID).Str("title", doc.Title).Msg("document created")

	return &doc, nil
}

// GetDocument 查询单个文档.
func (s *DocumentService) GetDocument(ctx context.Context, p *auth.Principal, id string) (*model.Document, error) {
	if err := auth.Require(p, auth.ActionRead); err != nil {
		return nil, err
	}

	var doc model.Document
	if err := s.dbClient.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("document not found")
		}

		return nil, apperr.Storage("get document", err)
	}

	return &doc, nil
}

// UpdateDocument 更新文档字段；nil 字段不变，任何实际更新都推进 updated_at.
func (s *DocumentService) UpdateDocument(ctx context.Context, p *auth.Principal,
	id string, req *types.UpdateDocumentRequest,
) (*model.Document, error) {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.Validation("title must not be empty")
		}

		updates["title"] = title
	}

	if req.Category != nil {
		updates["category"] = *req.Category
	}

	if len(updates) == 0 {
		return nil, apperr.Validation("no fields to update")
	}

	var doc model.Document

	err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("document not found")
			}

			return apperr.Storage("get document", err)
		}

		if err := tx.Model(&doc).Updates(updates).Error; err != nil {
			return apperr.Storage("update document", err)
		}

		fields := make([]string, 0, len(updates))
		for k := range updates {
			fields = append(fields, k)
		}

		return recordAudit(tx, p.UserID, model.ActionUpdateMetadata, &doc.ID, nil,
			map[string]any{"updated_fields": fields})
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// DeleteDocument 级联删除文档：版本、元数据与文件夹关联一并清除；
// 既有审计记录的 document_id 置空而非删除，最后追加一条 DELETE 审计记录，
// 其 document_id 为 NULL，被删文档的标识保留在审计 metadata 中.
func (s *DocumentService) DeleteDocument(ctx context.Context, p *auth.Principal, id string) error {
	if err := auth.Require(p, auth.ActionDelete); err != nil {
		return err
	}

	var blobKeys []string

	err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc model.Document
		if err := tx.First(&doc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("document not found")
			}

			return apperr.Storage("get document", err)
		}

		// 删行之前记下对象键，提交后清理对象存储
		if err := tx.Model(&model.DocumentVersion{}).
			Where("document_id = ?", id).
			Pluck("file_path", &blobKeys).Error; err != nil {
			return apperr.Storage("list version objects", err)
		}

		if err := tx.Where("document_id = ?", id).Delete(&model.DocumentVersion{}).Error; err != nil {
			return apperr.Storage("delete versions", err)
		}

		if err := tx.Where("document_id = ?", id).Delete(&model.DocumentMetadata{}).Error; err != nil {
			return apperr.Storage("delete metadata", err)
		}

		if err := tx.Where("document_id = ?", id).Delete(&model.DocumentFolder{}).Error; err != nil {
			return apperr.Storage("delete folder links", err)
		}

		if err := tx.Where("document_id = ?", id).Delete(&model.DocumentTag{}).Error; err != nil {
			return apperr.Storage("delete tag links", err)
		}

		// 审计历史保留，仅断开文档引用
		if err := tx.Model(&model.AuditLog{}).
			Where("document_id = ?", id).
			Update("document_id", nil).Error; err != nil {
			return apperr.Storage("detach audit entries", err)
		}

		if err := tx.Delete(&doc).Error; err != nil {
			return apperr.Storage("delete document", err)
		}

		return recordAudit(tx, p.UserID, model.ActionDelete, nil, nil,
			map[string]any{"deleted_document_id": doc.ID, "title": doc.Title})
	})
	if err != nil {
		return err
	}

	for _, key := range blobKeys {
		s.removeBlob(ctx, key)
	}

	nlog.Logger().Info().Str("document_id", id).Msg("document deleted")

	return nil
}

// ListDocuments 按标题子串与分类过滤，分页返回文档及其最新版本摘要.
func (s *DocumentService) ListDocuments(ctx context.Context, p *auth.Principal,
	req *types.ListDocumentsRequest,
) (*types.ListDocumentsResponse, error) {
	if err := auth.Require(p, auth.ActionRead); err != nil {
		return nil, err
	}

	req.Normalize()

	q := s.dbClient.WithContext(ctx).Model(&model.Document{})

	if req.Title != "" {
		q = q.Where("title LIKE ?", "%"+req.Title+"%")
	}

	if req.Category != "" {
		q = q.Where("category = ?", req.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Storage("count documents", err)
	}

	var docs []model.Document
	if err := q.Order("created_at DESC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&docs).Error; err != nil {
		return nil, apperr.Storage("list documents", err)
	}

	result := make([]types.DocumentWithLatest, 0, len(docs))

	if len(docs) > 0 {
		ids := make([]string, 0, len(docs))
		for _, d := range docs {
			ids = append(ids, d.ID)
		}

		// 每个文档的最新版本
		var latest []model.DocumentVersion
		if err := s.dbClient.WithContext(ctx).
			Where("document_id IN ?", ids).
			Where("version_number = (SELECT MAX(v2.version_number) FROM document_versions v2 WHERE v2.document_id = document_versions.document_id)").
			Find(&latest).Error; err != nil {
			return nil, apperr.Storage("list latest versions", err)
		}

		latestByDoc := make(map[string]model.DocumentVersion, len(latest))
		for _, v := range latest {
			latestByDoc[v.DocumentID] = v
		}

		for _, d := range docs {
			item := types.DocumentWithLatest{Document: d}

			if v, ok := latestByDoc[d.ID]; ok {
				item.Latest = &types.VersionSummary{
					VersionNumber: v.VersionNumber,
					FileName:      v.FileName,
					FileSize:      v.FileSize,
					MimeType:      v.MimeType,
					CreatedAt:     v.CreatedAt,
				}
			}

			result = append(result, item)
		}
	}

	return &types.ListDocumentsResponse{
		Documents: result,
		Total:     total,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}, nil
}
