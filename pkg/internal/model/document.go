// Package model 定义文档、版本、元数据与文件夹的持久化模型.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document 逻辑文档，拥有若干不可变版本与键值元数据.
type Document struct {
	ID       string  `gorm:"type:uuid;primaryKey"    json:"id"`
	Title    string  `gorm:"size:255;not null;index" json:"title"`
	Category *string `gorm:"size:100;index"          json:"category,omitempty"`
	// 任意字段变更都会推进 UpdatedAt
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	return nil
}

// DocumentVersion 文档的一个物理文件快照，创建后不可变.
// (document_id, version_number) 唯一，版本号从 1 开始连续递增.
type DocumentVersion struct {
	ID            string  `gorm:"type:uuid;primaryKey"                             json:"id"`
	DocumentID    string  `gorm:"type:uuid;not null;index;uniqueIndex:idx_doc_ver" json:"document_id"`
	VersionNumber int     `gorm:"not null;uniqueIndex:idx_doc_ver"                 json:"version_number"`
	FileName      string  `gorm:"size:255;not null"                                json:"file_name"`
	FilePath      string  `gorm:"type:text;not null"                               json:"file_path"`
	FileSize      int64   `gorm:"not null"                                         json:"file_size"`
	MimeType      *string `gorm:"size:100"                                         json:"mime_type,omitempty"`
	Checksum      *string `gorm:"size:128"                                         json:"checksum,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (v *DocumentVersion) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	return nil
}

// DocumentMetadata 文档的键值元数据，(document_id, key) 唯一.
// upsert 仅更新 value，CreatedAt 保留首次写入时间.
type DocumentMetadata struct {
	ID         string  `gorm:"type:uuid;primaryKey"                              json:"id"`
	DocumentID string  `gorm:"type:uuid;not null;index;uniqueIndex:idx_doc_meta" json:"document_id"`
	Key        string  `gorm:"column:key;size:255;not null;uniqueIndex:idx_doc_meta" json:"key"`
	Value      *string `gorm:"type:text"                                         json:"value,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m *DocumentMetadata) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	return nil
}

// Folder 文档分组；文档与文件夹为多对多关系.
type Folder struct {
	ID        string    `gorm:"type:uuid;primaryKey"       json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	CreatedBy string    `gorm:"type:uuid;not null"         json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Folder) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	return nil
}

// DocumentFolder 文档-文件夹关联表；文档删除时级联清理.
type DocumentFolder struct {
	DocumentID string `gorm:"type:uuid;primaryKey" json:"document_id"`
	FolderID   string `gorm:"type:uuid;primaryKey" json:"folder_id"`
}

// Tag 标签，名称全局唯一；文档与标签为多对多关系.
// 标签本身不随文档删除而消失，只断开关联.
type Tag struct {
	ID        string    `gorm:"type:uuid;primaryKey"          json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Tag) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	return nil
}

// DocumentTag 文档-标签关联表；文档删除时级联清理.
type DocumentTag struct {
	DocumentID string `gorm:"type:uuid;primaryKey" json:"document_id"`
	TagID      string `gorm:"type:uuid;primaryKey" json:"tag_id"`
}
