package service

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// upsertMetadata (document_id, key) 上的 upsert：已有行只更新 value，
// created_at 保留首次写入时间.
func upsertMetadata(tx *gorm.DB, documentID, key string, value *string) error {
	row := model.DocumentMetadata{
		DocumentID: documentID,
		Key:        key,
		Value:      value,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{"value": value}),
	}).Create(&row).Error; err != nil {
		return apperr.Storage("upsert metadata", err)
	}

	return nil
}

// SetMetadata 设置单个元数据键，upsert 语义.
func (s *DocumentService) SetMetadata(ctx context.Context, p *auth.Principal,
	documentID, key string, value *string,
) error {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return err
	}

	if strings.TrimSpace(key) == "" {
		return apperr.Validation("metadata key must not be empty")
	}

	if _, err := s.GetDocument(ctx, p, documentID); err != nil {
		return err
	}

	return s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertMetadata(tx, documentID, key, value); err != nil {
			return err
		}

		return recordAudit(tx, p.UserID, model.ActionUpdateMetadata, &documentID, nil,
			map[string]any{"key": key})
	})
}

// DeleteMetadata 删除元数据键；键不存在返回 not_found.
func (s *DocumentService) DeleteMetadata(ctx context.Context, p *auth.Principal,
	documentID, key string,
) error {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return err
	}

	if _, err := s.GetDocument(ctx, p, documentID); err != nil {
		return err
	}

	return s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// map 条件让方言自行引用列名，key 在 MySQL 里是保留字
		res := tx.Where(map[string]any{"document_id": documentID, "key": key}).
			Delete(&model.DocumentMetadata{})
		if res.Error != nil {
			return apperr.Storage("delete metadata", res.Error)
		}

		if res.RowsAffected == 0 {
			return apperr.NotFound("metadata key not found")
		}

		return recordAudit(tx, p.UserID, model.ActionUpdateMetadata, &documentID, nil,
			map[string]any{"deleted_key": key})
	})
}

// GetMetadata 返回文档的全部元数据键值对.
func (s *DocumentService) GetMetadata(ctx context.Context, p *auth.Principal,
	documentID string,
) (*types.MetadataResponse, error) {
	if err := auth.Require(p, auth.ActionRead); err != nil {
		return nil, err
	}

	if _, err := s.GetDocument(ctx, p, documentID); err != nil {
		return nil, err
	}

	var rows []model.DocumentMetadata
	if err := s.dbClient.WithContext(ctx).
		Where("document_id = ?", documentID).
		Find(&rows).Error; err != nil {
		return nil, apperr.Storage("list metadata", err)
	}

	metadata := make(map[string]*string, len(rows))
	for _, row := range rows {
		metadata[row.Key] = row.Value
	}

	return &types.MetadataResponse{
		DocumentID: documentID,
		Metadata:   metadata,
	}, nil
}
