// Package service 实现文档域的业务逻辑：文档与版本管理、元数据、审计与授权检查.
// 所有写操作在单个数据库事务内完成并附带审计记录.
package service

import (
	"context"
	"io"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ctxPkg "github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/storage/db"
	nlog "github.com/yeisme/docvault/pkg/log"
)

// BlobStore 版本文件内容的存取接口，由 s3.Client 实现；测试可注入内存实现.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// DocumentService 文档服务.
type DocumentService struct {
	dbClient *db.Client
	blobs    BlobStore
}

// NewDocumentService 从请求上下文取存储客户端构建服务.
func NewDocumentService(c context.Context) *DocumentService {
	dbc := ctxPkg.GetDBClient(c)

	var blobs BlobStore
	if s3c := ctxPkg.GetS3Client(c); s3c != nil {
		blobs = s3c
	}

	return &DocumentService{
		dbClient: dbc,
		blobs:    blobs,
	}
}

// NewDocumentServiceWith 显式注入依赖的构造函数.
func NewDocumentServiceWith(dbClient *db.Client, blobs BlobStore) *DocumentService {
	return &DocumentService{
		dbClient: dbClient,
		blobs:    blobs,
	}
}

// removeBlob 尽力删除对象；失败只记日志，数据库状态已经一致.
func (s *DocumentService) removeBlob(ctx context.Context, key string) {
	if s.blobs == nil {
		return
	}

	if err := s.blobs.Remove(ctx, key); err != nil {
		nlog.Logger().Warn().Str("key", key).Err(err).Msg("remove blob failed")
	}
}

// forUpdate 对查询施加行锁.SQLite 不支持 SELECT ... FOR UPDATE，跳过锁子句：
// 其写事务以 _txlock=immediate 打开（见 DSN），BEGIN 时即持写锁，
// 并发写按 busy_timeout 排队，等价于整库粒度的串行化.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}

	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
