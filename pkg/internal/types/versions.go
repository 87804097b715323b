package types

import "github.com/yeisme/docvault/pkg/internal/model"

// AddVersionRequest 新增版本的文件属性.
type AddVersionRequest struct {
	FileName string  `json:"file_name" rule:"required,max=255"`
	FilePath string  `json:"file_path" rule:"required"`
	FileSize int64   `json:"file_size" rule:"required,gt=0"`
	MimeType *string `json:"mime_type" rule:"omitempty,max=100"`
	Checksum *string `json:"checksum"  rule:"omitempty,max=128"`
}

// ListVersionsResponse 版本列表，按版本号升序.
type ListVersionsResponse struct {
	DocumentID string                  `json:"document_id"`
	Versions   []model.DocumentVersion `json:"versions"`
}
