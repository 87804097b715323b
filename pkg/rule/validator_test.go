package rule_test

import (
	"testing"

	"github.com/yeisme/docvault/pkg/rule"
)

// uploadForm 用于测试 ValidateStruct.
type uploadForm struct {
	FileName string `rule:"required,max=255"`
	FileSize int64  `rule:"required,gt=0"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	valid := uploadForm{FileName: "report.pdf", FileSize: 1024}
	if err := rule.ValidateStruct(valid); err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 缺少文件名
	missingName := uploadForm{FileName: "", FileSize: 1024}
	if err := rule.ValidateStruct(missingName); err == nil {
		t.Error("Expected error for missing file name, got nil")
	}

	// 大小非正
	badSize := uploadForm{FileName: "a.txt", FileSize: 0}
	if err := rule.ValidateStruct(badSize); err == nil {
		t.Error("Expected error for non-positive size, got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	if err := rule.ValidateVar("550e8400-e29b-41d4-a716-446655440000", "required,uuid"); err != nil {
		t.Errorf("Expected no error for valid uuid, got %v", err)
	}

	if err := rule.ValidateVar("not-a-uuid", "required,uuid"); err == nil {
		t.Error("Expected error for invalid uuid, got nil")
	}
}
