package domain

import (
	"errors"
	"fmt"
)

// Kind 失败分类，HTTP 层据此映射状态码
type Kind int

const (
	Unclassified Kind = iota
	MalformedID
	Validation
	Duplicate
	NotFound
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case MalformedID:
		return "malformed_id"
	case Validation:
		return "validation"
	case Duplicate:
		return "duplicate"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	}
	return "unclassified"
}

const (
	ResourceItem = "item"
	ResourceUser = "user"
)

const (
	MsgItemNotFound = "Item not found"
	MsgUserNotFound = "User not found"
	MsgForbidden    = "Forbidden"

	MsgImageRequired = "Either imageUrl or file upload is required"
)

// Error 带分类的业务错误；Msg 非空时直接作为响应文案
type Error struct {
	Kind     Kind
	Resource string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Resource, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Resource, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is 按 Kind 匹配哨兵错误（哨兵只带 Kind）
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Resource == "" && t.Msg == "" && t.Err == nil
}

var (
	ErrMalformedID = &Error{Kind: MalformedID}
	ErrValidation  = &Error{Kind: Validation}
	ErrDuplicate   = &Error{Kind: Duplicate}
	ErrNotFound    = &Error{Kind: NotFound}
	ErrForbidden   = &Error{Kind: Forbidden}
)

func MalformedIDError(resource, id string) error {
	return &Error{Kind: MalformedID, Resource: resource, Err: fmt.Errorf("invalid object id %q", id)}
}

func ValidationError(err error) error {
	return &Error{Kind: Validation, Err: err}
}

// ValidationMsg 自带文案的校验失败，跳过统一映射
func ValidationMsg(msg string) error {
	return &Error{Kind: Validation, Msg: msg}
}

func DuplicateError(resource string, err error) error {
	return &Error{Kind: Duplicate, Resource: resource, Err: err}
}

func NotFoundError(resource string) error {
	msg := MsgItemNotFound
	if resource == ResourceUser {
		msg = MsgUserNotFound
	}
	return &Error{Kind: NotFound, Resource: resource, Msg: msg}
}

func ForbiddenError(resource string) error {
	return &Error{Kind: Forbidden, Resource: resource, Msg: MsgForbidden}
}

// AsError 取错误链上第一个 *Error
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
