package service_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/docvault/pkg/internal/auth"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/storage/db"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// memBlobStore 内存对象存储，测试替身.
type memBlobStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{data: make(map[string][]byte)}
}

func (m *memBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b

	return nil
}

func (m *memBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memBlobStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)

	return nil
}

func (m *memBlobStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.data)
}

// newTestService 文件型 sqlite 数据库加内存对象存储，支撑并发写测试.
func newTestService(t *testing.T) (*service.DocumentService, *db.Client, *memBlobStore) {
	t.Helper()

	// _txlock=immediate：写事务在 BEGIN 时拿写锁，并发写按 busy_timeout 排队，
	// 而不是在锁升级时立刻拿到 SQLITE_BUSY
	dsn := "file:" + filepath.Join(t.TempDir(), "docvault.db") +
		"?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	client := &db.Client{DB: gormDB}
	if err := client.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	blobs := newMemBlobStore()

	return service.NewDocumentServiceWith(client, blobs), client, blobs
}

func adminPrincipal() *auth.Principal {
	return &auth.Principal{UserID: "11111111-1111-1111-1111-111111111111", Username: "admin", Role: model.RoleAdmin}
}

func editorPrincipal() *auth.Principal {
	return &auth.Principal{UserID: "22222222-2222-2222-2222-222222222222", Username: "editor", Role: model.RoleEditor}
}

func viewerPrincipal() *auth.Principal {
	return &auth.Principal{UserID: "33333333-3333-3333-3333-333333333333", Username: "viewer", Role: model.RoleViewer}
}

// mustCreateDocument 创建一个测试文档.
func mustCreateDocument(t *testing.T, svc *service.DocumentService, title string) *model.Document {
	t.Helper()

	doc, err := svc.CreateDocument(context.Background(), adminPrincipal(), &types.CreateDocumentRequest{Title: title})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}

	return doc
}

// mustAddVersion 为文档追加一个版本.
func mustAddVersion(t *testing.T, svc *service.DocumentService, docID, fileName string) *model.DocumentVersion {
	t.Helper()

	v, err := svc.AddVersion(context.Background(), adminPrincipal(), docID, &types.AddVersionRequest{
		FileName: fileName,
		FilePath: docID + "/" + fileName,
		FileSize: 42,
	})
	if err != nil {
		t.Fatalf("add version: %v", err)
	}

	return v
}

func countRows(t *testing.T, client *db.Client, m any, query string, args ...any) int64 {
	t.Helper()

	var n int64

	q := client.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}

	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}

	return n
}
