package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// CreateFolder 创建文件夹，名称唯一.
func (s *DocumentService) CreateFolder(ctx context.Context, p *auth.Principal,
	req *types.CreateFolderRequest,
) (*model.Folder, error) {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("folder name must not be empty")
	}

	folder := model.Folder{
		Name:      name,
		CreatedBy: p.UserID,
	}

	if err := s.dbClient.WithContext(ctx).Create(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("folder name already exists")
		}

		return nil, apperr.Storage("create folder", err)
	}

	return &folder, nil
}

// ListFolders 返回全部文件夹.
func (s *DocumentService) ListFolders(ctx context.Context, p *auth.Principal) (*types.ListFoldersResponse, error) {
	if err := auth.Require(p, auth.ActionRead); err != nil {
		return nil, err
	}

	var folders []model.Folder
	if err := s.dbClient.WithContext(ctx).
		Order("name ASC").
		Find(&folders).Error; err != nil {
		return nil, apperr.Storage("list folders", err)
	}

	return &types.ListFoldersResponse{Folders: folders}, nil
}

// AddDocumentToFolder 将文档加入文件夹，重复加入是幂等操作.
func (s *DocumentService) AddDocumentToFolder(ctx context.Context, p *auth.Principal,
	folderID, documentID string,
) error {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return err
	}

	if _, err := s.GetDocument(ctx, p, documentID); err != nil {
		return err
	}

	var folder model.Folder
	if err := s.dbClient.WithContext(ctx).First(&folder, "id = ?", folderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("folder not found")
		}

		return apperr.Storage("get folder", err)
	}

	link := model.DocumentFolder{
		DocumentID: documentID,
		FolderID:   folderID,
	}

	if err := s.dbClient.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error; err != nil {
		return apperr.Storage("link document to folder", err)
	}

	return nil
}

// RemoveDocumentFromFolder 将文档移出文件夹；关联不存在返回 not_found.
func (s *DocumentService) RemoveDocumentFromFolder(ctx context.Context, p *auth.Principal,
	folderID, documentID string,
) error {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return err
	}

	res := s.dbClient.WithContext(ctx).
		Where("document_id = ? AND folder_id = ?", documentID, folderID).
		Delete(&model.DocumentFolder{})
	if res.Error != nil {
		return apperr.Storage("unlink document from folder", res.Error)
	}

	if res.RowsAffected == 0 {
		return apperr.NotFound("document is not in folder")
	}

	return nil
}
