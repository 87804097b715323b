package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
)

// UploadInput 上传输入.DocumentID 为空时创建新文档，否则向已有文档追加版本.
// Reader 需要可重定位：版本号冲突重试时会从头重新上传.
type UploadInput struct {
	DocumentID  string
	Title       string
	Category    *string
	FileName    string
	Size        int64
	ContentType string
	Reader      io.ReadSeeker
	Metadata    map[string]*string
}

// blobKey 版本内容的对象键.
func blobKey(documentID string, versionNumber int) string {
	return fmt.Sprintf("%s/v%d", documentID, versionNumber)
}

// Upload 存储文件内容并在单个事务内落库：文档（新建时）、版本行、元数据
// 与审计记录一起提交；对象写入失败会回滚整个事务.
func (s *DocumentService) Upload(ctx context.Context, p *auth.Principal,
	in *UploadInput,
) (*types.UploadDocumentResponse, error) {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.FileName) == "" {
		return nil, apperr.Validation("file_name must not be empty")
	}

	if in.Size <= 0 {
		return nil, apperr.Validation("file_size must be positive")
	}

	if in.DocumentID == "" && strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	if in.DocumentID == "" {
		return s.uploadNewDocument(ctx, p, in)
	}

	return s.uploadNewVersion(ctx, p, in)
}

// uploadNewDocument 新建文档并写入第一个版本.
func (s *DocumentService) uploadNewDocument(ctx context.Context, p *auth.Principal,
	in *UploadInput,
) (*types.UploadDocumentResponse, error) {
	var resp *types.UploadDocumentResponse

	err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc := model.Document{
			Title:    strings.TrimSpace(in.Title),
			Category: in.Category,
		}

		if err := tx.Create(&doc).Error; err != nil {
			return apperr.Storage("create document", err)
		}

		version, err := s.storeVersion(ctx, tx, doc.ID, 1, in)
		if err != nil {
			return err
		}

		for key, value := range in.Metadata {
			if err := upsertMetadata(tx, doc.ID, key, value); err != nil {
				return err
			}
		}

		if err := recordAudit(tx, p.UserID, model.ActionUpload, &doc.ID, &version.VersionNumber,
			map[string]any{"title": doc.Title, "file_name": version.FileName}); err != nil {
			return err
		}

		resp = &types.UploadDocumentResponse{
			DocumentID:    doc.ID,
			VersionNumber: version.VersionNumber,
			FileName:      version.FileName,
			FileSize:      version.FileSize,
			Checksum:      version.Checksum,
			Created:       true,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	nlog.Logger().Info().
		Str("document_id", resp.DocumentID).
		Str("file_name", resp.FileName).
		Msg("document uploaded")

	return resp, nil
}

// uploadNewVersion 向已有文档追加版本，版本号分配遵循锁加重试的约定.
func (s *DocumentService) uploadNewVersion(ctx context.Context, p *auth.Principal,
	in *UploadInput,
) (*types.UploadDocumentResponse, error) {
	var resp *types.UploadDocumentResponse

	err := s.withVersionAlloc(ctx, in.DocumentID, func(tx *gorm.DB, doc *model.Document, next int) error {
		version, err := s.storeVersion(ctx, tx, doc.ID, next, in)
		if err != nil {
			return err
		}

		for key, value := range in.Metadata {
			if err := upsertMetadata(tx, doc.ID, key, value); err != nil {
				return err
			}
		}

		if err := tx.Model(doc).Update("updated_at", tx.NowFunc()).Error; err != nil {
			return apperr.Storage("touch document", err)
		}

		if err := recordAudit(tx, p.UserID, model.ActionCreateVersion, &doc.ID, &version.VersionNumber,
			map[string]any{"file_name": version.FileName}); err != nil {
			return err
		}

		resp = &types.UploadDocumentResponse{
			DocumentID:    doc.ID,
			VersionNumber: version.VersionNumber,
			FileName:      version.FileName,
			FileSize:      version.FileSize,
			Checksum:      version.Checksum,
			Created:       false,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// storeVersion 上传对象内容并插入版本行.内容经 sha256 计算校验和，
// 对象键为 "{document_id}/v{version_number}".
func (s *DocumentService) storeVersion(ctx context.Context, tx *gorm.DB,
	documentID string, versionNumber int, in *UploadInput,
) (*model.DocumentVersion, error) {
	if _, err := in.Reader.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.Storage("rewind upload content", err)
	}

	key := blobKey(documentID, versionNumber)
	hasher := sha256.New()

	if s.blobs == nil {
		return nil, apperr.Storage("blob store unavailable", nil)
	}

	if err := s.blobs.Put(ctx, key, io.TeeReader(in.Reader, hasher), in.Size, in.ContentType); err != nil {
		return nil, apperr.Storage("store file content", err)
	}

	checksum := hex.EncodeToString(hasher.Sum(nil))

	var mimeType *string
	if in.ContentType != "" {
		mimeType = &in.ContentType
	}

	version := model.DocumentVersion{
		DocumentID:    documentID,
		VersionNumber: versionNumber,
		FileName:      in.FileName,
		FilePath:      key,
		FileSize:      in.Size,
		MimeType:      mimeType,
		Checksum:      &checksum,
	}

	if err := tx.Create(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		return nil, apperr.Storage("insert version", err)
	}

	return &version, nil
}
