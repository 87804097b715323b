package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// TestCreateDocumentEmptyTitle 空标题被拒绝.
func TestCreateDocumentEmptyTitle(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, title := range []string{"", "   "} {
		_, err := svc.CreateDocument(context.Background(), adminPrincipal(), &types.CreateDocumentRequest{Title: title})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error for title %q, got %v", title, err)
		}
	}
}

// TestUpdateDocumentUnknownID 未知文档返回 not_found.
func TestUpdateDocumentUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)

	title := "new title"

	_, err := svc.UpdateDocument(context.Background(), adminPrincipal(),
		"00000000-0000-0000-0000-000000000000", &types.UpdateDocumentRequest{Title: &title})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

// TestDeleteDocumentCascade 级联删除清掉版本、元数据与文件夹关联，
// 审计记录保留但 document_id 置空，并追加一条 DELETE 审计.
func TestDeleteDocumentCascade(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	doc := mustCreateDocument(t, svc, "cascade")
	mustAddVersion(t, svc, doc.ID, "a.txt")
	mustAddVersion(t, svc, doc.ID, "b.txt")

	value := "v"
	if err := svc.SetMetadata(ctx, admin, doc.ID, "tag", &value); err != nil {
		t.Fatalf("set metadata: %v", err)
	}

	folder, err := svc.CreateFolder(ctx, admin, &types.CreateFolderRequest{Name: "reports"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	if err := svc.AddDocumentToFolder(ctx, admin, folder.ID, doc.ID); err != nil {
		t.Fatalf("link folder: %v", err)
	}

	if _, err := svc.AddTags(ctx, admin, &types.AddTagsRequest{DocumentID: doc.ID, Tags: []string{"keep"}}); err != nil {
		t.Fatalf("add tag: %v", err)
	}

	auditBefore := countRows(t, client, &model.AuditLog{}, "")

	if err := svc.DeleteDocument(ctx, admin, doc.ID); err != nil {
		t.Fatalf("delete document: %v", err)
	}

	if n := countRows(t, client, &model.Document{}, "id = ?", doc.ID); n != 0 {
		t.Fatal("document row not deleted")
	}

	if n := countRows(t, client, &model.DocumentVersion{}, "document_id = ?", doc.ID); n != 0 {
		t.Fatal("versions not cascaded")
	}

	if n := countRows(t, client, &model.DocumentMetadata{}, "document_id = ?", doc.ID); n != 0 {
		t.Fatal("metadata not cascaded")
	}

	if n := countRows(t, client, &model.DocumentFolder{}, "document_id = ?", doc.ID); n != 0 {
		t.Fatal("folder links not cascaded")
	}

	if n := countRows(t, client, &model.DocumentTag{}, "document_id = ?", doc.ID); n != 0 {
		t.Fatal("tag links not cascaded")
	}

	// 标签本身保留，可被其他文档复用
	if n := countRows(t, client, &model.Tag{}, "name = ?", "keep"); n != 1 {
		t.Fatal("tag row must survive document deletion")
	}

	// 审计历史保留：旧记录仍在，引用被置空，新增一条 DELETE
	if n := countRows(t, client, &model.AuditLog{}, ""); n != auditBefore+1 {
		t.Fatalf("expected %d audit rows, got %d", auditBefore+1, n)
	}

	if n := countRows(t, client, &model.AuditLog{}, "document_id = ?", doc.ID); n != 0 {
		t.Fatal("audit rows still reference deleted document")
	}

	var del model.AuditLog
	if err := client.Where("action = ?", model.ActionDelete).First(&del).Error; err != nil {
		t.Fatalf("load DELETE audit row: %v", err)
	}

	if del.DocumentID != nil {
		t.Fatalf("DELETE audit row must have NULL document_id, got %v", *del.DocumentID)
	}
}

// TestDeleteRequiresAdmin editor 与 viewer 不能删除.
func TestDeleteRequiresAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)
	doc := mustCreateDocument(t, svc, "protected")

	if err := svc.DeleteDocument(context.Background(), editorPrincipal(), doc.ID); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("editor delete should be denied, got %v", err)
	}

	if err := svc.DeleteDocument(context.Background(), viewerPrincipal(), doc.ID); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("viewer delete should be denied, got %v", err)
	}
}

// TestListDocumentsLatestVersion 列表附带最新版本摘要并支持过滤.
func TestListDocumentsLatestVersion(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	docA := mustCreateDocument(t, svc, "alpha report")
	mustAddVersion(t, svc, docA.ID, "a1.txt")
	mustAddVersion(t, svc, docA.ID, "a2.txt")

	mustCreateDocument(t, svc, "beta notes")

	resp, err := svc.ListDocuments(ctx, viewerPrincipal(), &types.ListDocumentsRequest{})
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}

	if resp.Total != 2 || len(resp.Documents) != 2 {
		t.Fatalf("expected 2 documents, got total=%d len=%d", resp.Total, len(resp.Documents))
	}

	for _, d := range resp.Documents {
		switch d.ID {
		case docA.ID:
			if d.Latest == nil || d.Latest.VersionNumber != 2 || d.Latest.FileName != "a2.txt" {
				t.Fatalf("wrong latest summary for %s: %+v", d.Title, d.Latest)
			}
		default:
			if d.Latest != nil {
				t.Fatalf("document without versions must have nil latest: %+v", d.Latest)
			}
		}
	}

	// 标题子串过滤
	filtered, err := svc.ListDocuments(ctx, viewerPrincipal(), &types.ListDocumentsRequest{Title: "alpha"})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}

	if filtered.Total != 1 || filtered.Documents[0].ID != docA.ID {
		t.Fatalf("title filter failed: %+v", filtered)
	}
}

// TestListDocumentsPagination 分页参数生效并在响应中回显.
func TestListDocumentsPagination(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreateDocument(t, svc, fmt.Sprintf("paged %d", i))
	}

	req := &types.ListDocumentsRequest{}
	req.Page = 2
	req.PageSize = 2

	resp, err := svc.ListDocuments(ctx, viewerPrincipal(), req)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}

	if resp.Page != 2 || resp.PageSize != 2 {
		t.Fatalf("pagination not echoed: page=%d page_size=%d", resp.Page, resp.PageSize)
	}

	if resp.Total != 5 || len(resp.Documents) != 2 {
		t.Fatalf("expected total=5 with 2 documents on page 2, got total=%d len=%d", resp.Total, len(resp.Documents))
	}

	// 未指定时落到默认值
	fresh, err := svc.ListDocuments(ctx, viewerPrincipal(), &types.ListDocumentsRequest{})
	if err != nil {
		t.Fatalf("default list: %v", err)
	}

	if fresh.Page != 1 || fresh.PageSize != 20 {
		t.Fatalf("expected default pagination 1/20, got %d/%d", fresh.Page, fresh.PageSize)
	}
}
