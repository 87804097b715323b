package service_test

import (
	"context"
	"testing"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// TestAddTagsFindOrCreate 同名标签只建一行，复用时 tag_created 为 false.
func TestAddTagsFindOrCreate(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	docA := mustCreateDocument(t, svc, "tagged a")
	docB := mustCreateDocument(t, svc, "tagged b")

	respA, err := svc.AddTags(ctx, admin, &types.AddTagsRequest{
		DocumentID: docA.ID,
		Tags:       []string{"urgent", "finance"},
	})
	if err != nil {
		t.Fatalf("tag first document: %v", err)
	}

	if respA.Total != 2 {
		t.Fatalf("expected 2 tags processed, got %d", respA.Total)
	}

	for _, info := range respA.Tags {
		if !info.TagCreated {
			t.Fatalf("tag %s should be newly created", info.TagName)
		}
	}

	respB, err := svc.AddTags(ctx, admin, &types.AddTagsRequest{
		DocumentID: docB.ID,
		Tags:       []string{"urgent"},
	})
	if err != nil {
		t.Fatalf("tag second document: %v", err)
	}

	if respB.Tags[0].TagCreated {
		t.Fatal("existing tag must be reused, not created")
	}

	if n := countRows(t, client, &model.Tag{}, "name = ?", "urgent"); n != 1 {
		t.Fatalf("expected single tags row for shared name, got %d", n)
	}

	if n := countRows(t, client, &model.DocumentTag{}, "tag_id = ?", respB.Tags[0].TagID); n != 2 {
		t.Fatalf("expected 2 links for shared tag, got %d", n)
	}
}

// TestAddTagsIdempotentLink 重复打同一标签不产生重复关联.
func TestAddTagsIdempotentLink(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	doc := mustCreateDocument(t, svc, "relinked")

	for i := 0; i < 2; i++ {
		if _, err := svc.AddTags(ctx, admin, &types.AddTagsRequest{
			DocumentID: doc.ID,
			Tags:       []string{"dup"},
		}); err != nil {
			t.Fatalf("add tags attempt %d: %v", i+1, err)
		}
	}

	if n := countRows(t, client, &model.DocumentTag{}, "document_id = ?", doc.ID); n != 1 {
		t.Fatalf("expected single link row, got %d", n)
	}
}

// TestAddTagsValidation 空列表、全空白名称与未知文档被拒绝.
func TestAddTagsValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	doc := mustCreateDocument(t, svc, "validated")

	if _, err := svc.AddTags(ctx, admin, &types.AddTagsRequest{
		DocumentID: doc.ID,
	}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("empty tags list should fail validation, got %v", err)
	}

	if _, err := svc.AddTags(ctx, admin, &types.AddTagsRequest{
		DocumentID: doc.ID,
		Tags:       []string{"  ", ""},
	}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("blank tag names should fail validation, got %v", err)
	}

	if _, err := svc.AddTags(ctx, admin, &types.AddTagsRequest{
		DocumentID: "00000000-0000-0000-0000-000000000000",
		Tags:       []string{"x"},
	}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown document should fail not_found, got %v", err)
	}
}

// TestViewerCannotAddTags viewer 无写权限，不留任何行.
func TestViewerCannotAddTags(t *testing.T) {
	svc, client, _ := newTestService(t)

	doc := mustCreateDocument(t, svc, "readonly")

	if _, err := svc.AddTags(context.Background(), viewerPrincipal(), &types.AddTagsRequest{
		DocumentID: doc.ID,
		Tags:       []string{"x"},
	}); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("viewer tagging should be denied, got %v", err)
	}

	if n := countRows(t, client, &model.Tag{}, ""); n != 0 {
		t.Fatalf("expected no tag rows, got %d", n)
	}
}
