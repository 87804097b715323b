package service_test

import (
	"context"
	"testing"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// TestEveryMutationLeavesOneAuditRow 每个成功的写操作恰好产生一条审计记录.
func TestEveryMutationLeavesOneAuditRow(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	doc := mustCreateDocument(t, svc, "audited")

	if n := countRows(t, client, &model.AuditLog{}, "action = ?", model.ActionUpload); n != 1 {
		t.Fatalf("expected 1 UPLOAD audit row, got %d", n)
	}

	v := mustAddVersion(t, svc, doc.ID, "a.txt")

	if n := countRows(t, client, &model.AuditLog{}, "action = ?", model.ActionCreateVersion); n != 1 {
		t.Fatalf("expected 1 CREATE_VERSION audit row, got %d", n)
	}

	// CREATE_VERSION 记录实际分配的版本号
	var row model.AuditLog
	if err := client.Where("action = ?", model.ActionCreateVersion).First(&row).Error; err != nil {
		t.Fatalf("load audit row: %v", err)
	}

	if row.DocumentVersion == nil || *row.DocumentVersion != v.VersionNumber {
		t.Fatalf("CREATE_VERSION must record the version number, got %v", row.DocumentVersion)
	}

	value := "x"
	if err := svc.SetMetadata(ctx, admin, doc.ID, "k", &value); err != nil {
		t.Fatalf("set metadata: %v", err)
	}

	if n := countRows(t, client, &model.AuditLog{}, "action = ?", model.ActionUpdateMetadata); n != 1 {
		t.Fatalf("expected 1 UPDATE_METADATA audit row, got %d", n)
	}

	// UPDATE_METADATA 不关联版本号
	var metaRow model.AuditLog
	if err := client.Where("action = ?", model.ActionUpdateMetadata).First(&metaRow).Error; err != nil {
		t.Fatalf("load metadata audit row: %v", err)
	}

	if metaRow.DocumentVersion != nil {
		t.Fatalf("UPDATE_METADATA must not record a version, got %v", *metaRow.DocumentVersion)
	}

	if _, err := svc.RestoreVersion(ctx, admin, doc.ID, 1); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if n := countRows(t, client, &model.AuditLog{}, "action = ?", model.ActionRestoreVersion); n != 1 {
		t.Fatalf("expected 1 RESTORE_VERSION audit row, got %d", n)
	}

	if err := svc.DeleteDocument(ctx, admin, doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if n := countRows(t, client, &model.AuditLog{}, "action = ?", model.ActionDelete); n != 1 {
		t.Fatalf("expected 1 DELETE audit row, got %d", n)
	}
}

// TestAuditInsertFailureRollsBackMutation 审计写入失败时业务变更一并回滚.
func TestAuditInsertFailureRollsBackMutation(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()
	doc := mustCreateDocument(t, svc, "rollback")

	// 人为制造审计写入失败
	if err := client.Migrator().DropTable(&model.AuditLog{}); err != nil {
		t.Fatalf("drop audit table: %v", err)
	}

	value := "v"
	if err := svc.SetMetadata(ctx, admin, doc.ID, "k", &value); err == nil {
		t.Fatal("expected SetMetadata to fail when audit insert fails")
	}

	if n := countRows(t, client, &model.DocumentMetadata{}, "document_id = ?", doc.ID); n != 0 {
		t.Fatalf("mutation must roll back with the audit failure, found %d metadata rows", n)
	}
}

// TestQueryAuditRequiresAdmin 审计查询只对 admin 开放.
func TestQueryAuditRequiresAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.QueryAudit(ctx, editorPrincipal(), &types.QueryAuditRequest{}); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("editor audit query should be denied, got %v", err)
	}

	if _, err := svc.QueryAudit(ctx, viewerPrincipal(), &types.QueryAuditRequest{}); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Fatalf("viewer audit query should be denied, got %v", err)
	}

	if _, err := svc.QueryAudit(ctx, adminPrincipal(), &types.QueryAuditRequest{}); err != nil {
		t.Fatalf("admin audit query should pass, got %v", err)
	}
}

// TestQueryAuditFilters 按动作与文档过滤，时间倒序.
func TestQueryAuditFilters(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	doc := mustCreateDocument(t, svc, "filtered")
	mustAddVersion(t, svc, doc.ID, "f.txt")

	resp, err := svc.QueryAudit(ctx, admin, &types.QueryAuditRequest{Action: string(model.ActionCreateVersion)})
	if err != nil {
		t.Fatalf("query audit: %v", err)
	}

	if resp.Total != 1 || resp.Entries[0].Action != model.ActionCreateVersion {
		t.Fatalf("action filter failed: %+v", resp)
	}

	// 未知动作被拒绝
	if _, err := svc.QueryAudit(ctx, admin, &types.QueryAuditRequest{Action: "SHRED"}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("unknown action should fail validation, got %v", err)
	}

	// 分页参数生效并回显
	paged := &types.QueryAuditRequest{}
	paged.Page = 1
	paged.PageSize = 1

	pagedResp, err := svc.QueryAudit(ctx, admin, paged)
	if err != nil {
		t.Fatalf("paged query: %v", err)
	}

	if pagedResp.Page != 1 || pagedResp.PageSize != 1 || len(pagedResp.Entries) != 1 {
		t.Fatalf("pagination failed: page=%d page_size=%d len=%d",
			pagedResp.Page, pagedResp.PageSize, len(pagedResp.Entries))
	}

	if pagedResp.Total != 2 {
		t.Fatalf("expected total=2 audit rows, got %d", pagedResp.Total)
	}
}
