package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/metrics"
)

// versionAllocRetries 版本号分配在唯一索引冲突时的最大重试次数.
const versionAllocRetries = 3

// retryableAllocError 判断分配事务是否值得带全新状态重试：
// 唯一索引 (document_id, version_number) 冲突，或 SQLite 的写锁竞争.
// SQLITE_BUSY 两个编译变体的驱动都只以错误文本报告，没有可比对的哨兵错误.
func retryableAllocError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// withVersionAlloc 在单个事务内锁定文档行、计算下一个版本号并执行 fn.
// 唯一索引是并发分配的兜底：提交时的重复键冲突（或 SQLite 写锁竞争）
// 触发带全新状态的重试，重试耗尽返回可重试的冲突错误.
func (s *DocumentService) withVersionAlloc(ctx context.Context, documentID string,
	fn func(tx *gorm.DB, doc *model.Document, next int) error,
) error {
	var lastErr error

	for attempt := 0; attempt < versionAllocRetries; attempt++ {
		err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var doc model.Document
			if err := forUpdate(tx).First(&doc, "id = ?", documentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("document not found")
				}

				return apperr.Storage("lock document", err)
			}

			var maxVersion int
			if err := tx.Model(&model.DocumentVersion{}).
				Where("document_id = ?", documentID).
				Select("COALESCE(MAX(version_number), 0)").
				Scan(&maxVersion).Error; err != nil {
				return apperr.Storage("query max version", err)
			}

			return fn(tx, &doc, maxVersion+1)
		})
		if err == nil {
			return nil
		}

		if !retryableAllocError(err) {
			return err
		}

		metrics.VersionConflictCounter.WithLabelValues("retried").Inc()

		lastErr = err
	}

	metrics.VersionConflictCounter.WithLabelValues("exhausted").Inc()

	return apperr.Wrap(apperr.KindConflict, "version number allocation conflict", lastErr)
}

func validateVersionRequest(req *types.AddVersionRequest) error {
	if strings.TrimSpace(req.FileName) == "" {
		return apperr.Validation("file_name must not be empty")
	}

	if req.FileSize <= 0 {
		return apperr.Validation("file_size must be positive")
	}

	return nil
}

// AddVersion 为文档追加一个不可变版本，版本号连续递增.
func (s *DocumentService) AddVersion(ctx context.Context, p *auth.Principal,
	documentID string, req *types.AddVersionRequest,
) (*model.DocumentVersion, error) {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return nil, err
	}

	if err := validateVersionRequest(req); err != nil {
		return nil, err
	}

	var created model.DocumentVersion

	err := s.withVersionAlloc(ctx, documentID, func(tx *gorm.DB, doc *model.Document, next int) error {
		created = model.DocumentVersion{
			DocumentID:    documentID,
			VersionNumber: next,
			FileName:      req.FileName,
			FilePath:      req.FilePath,
			FileSize:      req.FileSize,
			MimeType:      req.MimeType,
			Checksum:      req.Checksum,
		}

		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}

			return apperr.Storage("insert version", err)
		}

		// 版本追加推进文档的 updated_at
		if err := tx.Model(doc).Update("updated_at", tx.NowFunc()).Error; err != nil {
			return apperr.Storage("touch document", err)
		}

		return recordAudit(tx, p.UserID, model.ActionCreateVersion, &documentID, &created.VersionNumber,
			map[string]any{"file_name": created.FileName})
	})
	if err != nil {
		return nil, err
	}

	nlog.Logger().Info().
		Str("document_id", documentID).
		Int("version", created.VersionNumber).
		Msg("version created")

	return &created, nil
}

// RestoreVersion 将目标版本的文件属性复制为一个新版本（copy-forward），历史不变.
func (s *DocumentService) RestoreVersion(ctx context.Context, p *auth.Principal,
	documentID string, targetVersion int,
) (*model.DocumentVersion, error) {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return nil, err
	}

	if targetVersion < 1 {
		return nil, apperr.Validation("version number must be positive")
	}

	var created model.DocumentVersion

	err := s.withVersionAlloc(ctx, documentID, func(tx *gorm.DB, doc *model.Document, next int) error {
		var target model.DocumentVersion
		if err := tx.Where("document_id = ? AND version_number = ?", documentID, targetVersion).
			First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(fmt.Sprintf("version %d not found", targetVersion))
			}

			return apperr.Storage("get target version", err)
		}

		created = model.DocumentVersion{
			DocumentID:    documentID,
			VersionNumber: next,
			FileName:      target.FileName,
			FilePath:      target.FilePath,
			FileSize:      target.FileSize,
			MimeType:      target.MimeType,
			Checksum:      target.Checksum,
		}

		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}

			return apperr.Storage("insert restored version", err)
		}

		if err := tx.Model(doc).Update("updated_at", tx.NowFunc()).Error; err != nil {
			return apperr.Storage("touch document", err)
		}

		return recordAudit(tx, p.UserID, model.ActionRestoreVersion, &documentID, &created.VersionNumber,
			map[string]any{"restored_from": targetVersion})
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ListVersions 按版本号升序返回文档的全部版本.
func (s *DocumentService) ListVersions(ctx context.Context, p *auth.Principal,
	documentID string,
) (*types.ListVersionsResponse, error) {
	if err := auth.Require(p, auth.ActionRead); err != nil {
		return nil, err
	}

	if _, err := s.GetDocument(ctx, p, documentID); err != nil {
		return nil, err
	}

	var versions []model.DocumentVersion
	if err := s.dbClient.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("version_number ASC").
		Find(&versions).Error; err != nil {
		return nil, apperr.Storage("list versions", err)
	}

	return &types.ListVersionsResponse{
		DocumentID: documentID,
		Versions:   versions,
	}, nil
}

// getVersion 取指定版本；versionNumber 为 0 表示最新版本.
func (s *DocumentService) getVersion(ctx context.Context, documentID string, versionNumber int) (*model.DocumentVersion, error) {
	q := s.dbClient.WithContext(ctx).Where("document_id = ?", documentID)

	if versionNumber > 0 {
		q = q.Where("version_number = ?", versionNumber)
	} else {
		q = q.Order("version_number DESC")
	}

	var version model.DocumentVersion
	if err := q.First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("version not found")
		}

		return nil, apperr.Storage("get version", err)
	}

	return &version, nil
}
