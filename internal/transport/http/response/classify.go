package response

import (
	"errors"
	"net/http"

	"wtwr-api/internal/domain"
)

var kindStatus = map[domain.Kind]int{
	domain.MalformedID: http.StatusBadRequest,
	domain.Validation:  http.StatusBadRequest,
	domain.Duplicate:   http.StatusConflict,
	domain.NotFound:    http.StatusNotFound,
	domain.Forbidden:   http.StatusForbidden,
}

// Classify 错误 → (状态码, 文案)
//
// 自带文案的失败（not found / forbidden / 缺图片）原样返回；
// 其余按 非法 id → 校验失败 → 重复 → 其它 的顺序取第一个命中。
func Classify(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	if de, ok := domain.AsError(err); ok && de.Msg != "" {
		if status, ok := kindStatus[de.Kind]; ok {
			return status, de.Msg
		}
		return http.StatusInternalServerError, MsgServerError
	}
	switch {
	case errors.Is(err, domain.ErrMalformedID):
		return http.StatusBadRequest, MsgInvalidID
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, MsgInvalidData
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, MsgDuplicate
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, MsgRouteNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.MsgForbidden
	}
	return http.StatusInternalServerError, MsgServerError
}
