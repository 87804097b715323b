package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/yeisme/docvault/pkg/apperr"
)

// TestHTTPStatusMapping 错误类别到状态码.
func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Authentication("bad key"), http.StatusUnauthorized},
		{apperr.Authorization("no"), http.StatusForbidden},
		{apperr.Validation("empty"), http.StatusBadRequest},
		{apperr.NotFound("gone"), http.StatusNotFound},
		{apperr.Conflict("dup"), http.StatusConflict},
		{apperr.Storage("db", errors.New("down")), http.StatusInternalServerError},
		// 非 apperr 错误按存储失败处理
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := apperr.HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

// TestKindOfWrapped 包装后的错误仍能提取类别.
func TestKindOfWrapped(t *testing.T) {
	inner := apperr.NotFound("document not found")
	wrapped := fmt.Errorf("handling request: %w", inner)

	if kind := apperr.KindOf(wrapped); kind != apperr.KindNotFound {
		t.Fatalf("expected not_found through wrapping, got %s", kind)
	}

	if !apperr.IsKind(wrapped, apperr.KindNotFound) {
		t.Fatal("IsKind should see through wrapping")
	}
}

// TestUnwrap 保留底层错误链.
func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Storage("ping database", cause)

	if !errors.Is(err, cause) {
		t.Fatal("errors.Is should find the cause")
	}
}
