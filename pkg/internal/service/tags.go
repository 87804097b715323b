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

// AddTags 为文档批量打标签：标签按名称查找或创建，重复关联是幂等操作.
// 空白标签名被跳过，全部无效时返回校验错误.
func (s *DocumentService) AddTags(ctx context.Context, p *auth.Principal,
	req *types.AddTagsRequest,
) (*types.AddTagsResponse, error) {
	if err := auth.Require(p, auth.ActionWrite); err != nil {
		return nil, err
	}

	if len(req.Tags) == 0 {
		return nil, apperr.Validation("tags list must not be empty")
	}

	if _, err := s.GetDocument(ctx, p, req.DocumentID); err != nil {
		return nil, err
	}

	var infos []types.TagInfo

	err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range req.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			tag, created, err := findOrCreateTag(tx, name)
			if err != nil {
				return err
			}

			link := model.DocumentTag{
				DocumentID: req.DocumentID,
				TagID:      tag.ID,
			}

			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return apperr.Storage("link tag to document", err)
			}

			infos = append(infos, types.TagInfo{
				TagID:      tag.ID,
				TagName:    tag.Name,
				TagCreated: created,
			})
		}

		if len(infos) == 0 {
			return apperr.Validation("no valid tag names")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &types.AddTagsResponse{
		DocumentID: req.DocumentID,
		Tags:       infos,
		Total:      len(infos),
	}, nil
}

// findOrCreateTag 按名称查找标签，不存在则创建；
// 并发创建撞上唯一索引时改为读取已有行.
func findOrCreateTag(tx *gorm.DB, name string) (*model.Tag, bool, error) {
	var tag model.Tag

	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperr.Storage("get tag", err)
	}

	tag = model.Tag{Name: name}

	if err := tx.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
				return nil, false, apperr.Storage("get tag", err)
			}

			return &tag, false, nil
		}

		return nil, false, apperr.Storage("create tag", err)
	}

	return &tag, true, nil
}
