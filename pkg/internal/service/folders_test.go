package service_test

import (
	"context"
	"testing"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// TestFolderMembership 加入是幂等的，移出不存在的关联返回 not_found.
func TestFolderMembership(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	doc := mustCreateDocument(t, svc, "member")

	folder, err := svc.CreateFolder(ctx, admin, &types.CreateFolderRequest{Name: "shared"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	if err := svc.AddDocumentToFolder(ctx, admin, folder.ID, doc.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}

	// 重复加入不报错也不加行
	if err := svc.AddDocumentToFolder(ctx, admin, folder.ID, doc.ID); err != nil {
		t.Fatalf("second add: %v", err)
	}

	if n := countRows(t, client, &model.DocumentFolder{}, "folder_id = ?", folder.ID); n != 1 {
		t.Fatalf("expected single link row, got %d", n)
	}

	if err := svc.RemoveDocumentFromFolder(ctx, admin, folder.ID, doc.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := svc.RemoveDocumentFromFolder(ctx, admin, folder.ID, doc.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found on second remove, got %v", err)
	}
}

// TestFolderNameUnique 重名文件夹返回 conflict.
func TestFolderNameUnique(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	if _, err := svc.CreateFolder(ctx, admin, &types.CreateFolderRequest{Name: "dup"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	if _, err := svc.CreateFolder(ctx, admin, &types.CreateFolderRequest{Name: "dup"}); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
