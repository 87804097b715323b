package types

import (
	"time"

	"github.com/yeisme/docvault/pkg/internal/model"
)

// CreateDocumentRequest 创建文档请求（不含文件时使用）.
type CreateDocumentRequest struct {
	Title    string  `json:"title"    rule:"required,max=255"`
	Category *string `json:"category" rule:"omitempty,max=100"`
}

// UpdateDocumentRequest 更新文档字段，nil 字段保持不变.
type UpdateDocumentRequest struct {
	Title    *string `json:"title"    rule:"omitempty,min=1,max=255"`
	Category *string `json:"category" rule:"omitempty,max=100"`
}

// ListDocumentsRequest 文档列表过滤条件.
type ListDocumentsRequest struct {
	Pagination

	Title    string `form:"title"    rule:"omitempty,max=255"`
	Category string `form:"category" rule:"omitempty,max=100"`
}

// VersionSummary 版本摘要，用于列表中的最新版本展示.
type VersionSummary struct {
	VersionNumber int       `json:"version_number"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	MimeType      *string   `json:"mime_type,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DocumentWithLatest 文档及其最新版本摘要；从未上传过版本时 Latest 为 nil.
type DocumentWithLatest struct {
	model.Document

	Latest *VersionSummary `json:"latest_version,omitempty"`
}

// ListDocumentsResponse 文档列表响应.
type ListDocumentsResponse struct {
	Documents []DocumentWithLatest `json:"documents"`
	Total     int64                `json:"total"`
	Page      int                  `json:"page"`
	PageSize  int                  `json:"page_size"`
}

// UploadDocumentResponse 上传响应，涵盖新建文档与追加版本两种情况.
type UploadDocumentResponse struct {
	DocumentID    string  `json:"document_id"`
	VersionNumber int     `json:"version_number"`
	FileName      string  `json:"file_name"`
	FileSize      int64   `json:"file_size"`
	Checksum      *string `json:"checksum,omitempty"`
	Created       bool    `json:"created"` // true 表示本次上传创建了新文档
}
