package service

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/apperr"
)

// TestRetryableAllocError 版本号分配只对重复键冲突和 SQLite 写锁竞争重试，
// 其余存储错误直接上抛.
func TestRetryableAllocError(t *testing.T) {
	busy := apperr.Storage("insert version",
		fmt.Errorf("database is locked (5) (SQLITE_BUSY)"))

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicated key", gorm.ErrDuplicatedKey, true},
		{"wrapped duplicated key", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite busy", busy, true},
		{"locked without code", apperr.Storage("lock document", errors.New("database is locked")), true},
		{"record not found", apperr.NotFound("document not found"), false},
		{"connection failure", apperr.Storage("insert version", errors.New("connection refused")), false},
	}

	for _, tc := range cases {
		if got := retryableAllocError(tc.err); got != tc.want {
			t.Errorf("%s: retryableAllocError = %v, want %v", tc.name, got, tc.want)
		}
	}
}
