// Package apperr 定义服务的稳定错误分类，供 service 层返回、handle 层映射为 HTTP 状态码.
// 每个错误携带一个封闭集合内的 Kind，调用方按 Kind 分支而非匹配错误文本.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别，封闭枚举.
type Kind string

const (
	// KindAuthentication 未知或缺失的 API Key，未打开任何事务.
	KindAuthentication Kind = "authentication"
	// KindAuthorization 已认证主体但角色权限不足，未触达存储.
	KindAuthorization Kind = "authorization"
	// KindValidation 输入不合法，发生在任何写操作之前.
	KindValidation Kind = "validation"
	// KindNotFound 引用的文档/版本/元数据键不存在.
	KindNotFound Kind = "not_found"
	// KindConflict 唯一性或并发版本号竞争，调用方可携带新数据重试.
	KindConflict Kind = "conflict"
	// KindStorage 底层事务/连接失败，整个事务已回滚.
	KindStorage Kind = "storage"
)

// Error 带类别的错误.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建指定类别的错误.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap 包装底层错误并附加类别.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Authentication 认证失败.
func Authentication(msg string) *Error { return New(KindAuthentication, msg) }

// Authorization 授权失败.
func Authorization(msg string) *Error { return New(KindAuthorization, msg) }

// Validation 输入校验失败.
func Validation(msg string) *Error { return New(KindValidation, msg) }

// NotFound 目标不存在.
func NotFound(msg string) *Error { return New(KindNotFound, msg) }

// Conflict 唯一性冲突.
func Conflict(msg string) *Error { return New(KindConflict, msg) }

// Storage 存储层失败.
func Storage(msg string, err error) *Error { return Wrap(KindStorage, msg, err) }

// KindOf 提取错误的类别；非 apperr 错误一律视为 storage.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindStorage
}

// IsKind 判断错误是否属于指定类别.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus 错误类别到 HTTP 状态码的映射.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
