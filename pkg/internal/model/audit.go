package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction 审计动作，封闭枚举；新增动作属于 schema 变更而非自由文本.
type AuditAction string

const (
	ActionUpload         AuditAction = "UPLOAD"
	ActionDownload       AuditAction = "DOWNLOAD"
	ActionUpdateMetadata AuditAction = "UPDATE_METADATA"
	ActionCreateVersion  AuditAction = "CREATE_VERSION"
	ActionDelete         AuditAction = "DELETE"
	ActionRestoreVersion AuditAction = "RESTORE_VERSION"
)

// Valid 判断动作是否属于封闭集合.
func (a AuditAction) Valid() bool {
	switch a {
	case ActionUpload, ActionDownload, ActionUpdateMetadata,
		ActionCreateVersion, ActionDelete, ActionRestoreVersion:
		return true
	}

	return false
}

// AuditLog 只追加的审计记录，写入后不再更新或删除.
// DocumentID 可为空：文档硬删除后既有记录置空而非级联删除，审计历史得以保留.
type AuditLog struct {
	ID              string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Action          AuditAction `gorm:"size:32;not null;index"   json:"action"`
	DocumentID      *string     `gorm:"type:uuid;index"          json:"document_id,omitempty"`
	DocumentVersion *int        `json:"document_version,omitempty"`
	// Metadata 附加上下文，JSON 对象文本
	Metadata  string    `gorm:"type:text;not null;default:'{}'" json:"metadata"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	return nil
}
