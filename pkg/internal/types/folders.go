package types

import "github.com/yeisme/docvault/pkg/internal/model"

// CreateFolderRequest 创建文件夹.
type CreateFolderRequest struct {
	Name string `json:"name" rule:"required,max=255"`
}

// ListFoldersResponse 文件夹列表.
type ListFoldersResponse struct {
	Folders []model.Folder `json:"folders"`
}
