package service

import (
	"context"
	"io"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
)

// Download 读取文档某个版本的文件内容；versionNumber 为 0 表示最新版本.
// DOWNLOAD 审计记录携带实际提供的版本号，在内容流式返回前落库.
func (s *DocumentService) Download(ctx context.Context, p *auth.Principal,
	documentID string, versionNumber int,
) (io.ReadCloser, *model.DocumentVersion, error) {
	if err := auth.Require(p, auth.ActionRead); err != nil {
		return nil, nil, err
	}

	if _, err := s.GetDocument(ctx, p, documentID); err != nil {
		return nil, nil, err
	}

	version, err := s.getVersion(ctx, documentID, versionNumber)
	if err != nil {
		return nil, nil, err
	}

	err = s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return recordAudit(tx, p.UserID, model.ActionDownload, &documentID, &version.VersionNumber,
			map[string]any{"file_name": version.FileName})
	})
	if err != nil {
		return nil, nil, err
	}

	if s.blobs == nil {
		return nil, nil, apperr.Storage("blob store unavailable", nil)
	}

	content, err := s.blobs.Get(ctx, version.FilePath)
	if err != nil {
		return nil, nil, apperr.Storage("read file content", err)
	}

	return content, version, nil
}
