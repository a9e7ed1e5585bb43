package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NotFoundError 目标记录不存在（终态错误，调用方不应重试）。
type NotFoundError struct {
	Entity string // user / vehicle / service
}

func (e *NotFoundError) Error() string {
	if e.Entity == "" {
		return "record not found"
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

// NotFound 构造 NotFoundError。
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// IsNotFound 判断是否为“记录不存在”。
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError 字段校验失败，按字段携带可读的错误描述。
// 调用方修正入参后可重试；核心不做任何自动重试。
type ValidationError struct {
	Fields map[string]string
}

func NewValidation() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add 记录一个字段错误；同一字段后写覆盖先写。
func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = msg
	return e
}

// Empty 是否没有任何字段错误。
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil 没有错误时返回 nil，便于校验函数直接 return。
func (e *ValidationError) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if e.Empty() {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// IsValidation 判断是否为校验错误。
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DeniedKind 区分两类拒绝：角色不符 / 不是该记录的责任人。
// 两者分开返回，调用方才能渲染正确的提示文案。
type DeniedKind int

const (
	DeniedByRole   DeniedKind = iota // 角色策略拒绝
	DeniedByRecord                   // 对象级（责任人）拒绝
)

// DeniedError 鉴权拒绝（终态错误）。
type DeniedError struct {
	Kind   DeniedKind
	Reason string
}

func (e *DeniedError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "access denied"
}

// DenyRole 角色策略拒绝。
func DenyRole(reason string) error {
	return &DeniedError{Kind: DeniedByRole, Reason: reason}
}

// DenyRecord 对象级拒绝（角色正确，但不是该记录的责任人）。
func DenyRecord(reason string) error {
	return &DeniedError{Kind: DeniedByRecord, Reason: reason}
}

// IsDenied 判断是否为鉴权拒绝。
func IsDenied(err error) bool {
	var de *DeniedError
	return errors.As(err, &de)
}

// IsDeniedByRecord 判断是否为对象级拒绝。
func IsDeniedByRecord(err error) bool {
	var de *DeniedError
	return errors.As(err, &de) && de.Kind == DeniedByRecord
}
