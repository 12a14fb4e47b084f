package response

import "net/http"

// 对外固定文案
const (
	MsgInvalidID       = "Invalid ID format"
	MsgInvalidData     = "Invalid data provided"
	MsgDuplicate       = "Duplicate entry"
	MsgServerError     = "An error has occurred on the server"
	MsgRouteNotFound   = "Requested resource not found"
	MsgItemDeleted     = "Item deleted successfully"
	MsgUserDeleted     = "User deleted successfully"
	MsgUnauthorized    = "Authorization required"
	MsgTooManyRequests = "Too many requests"
	MsgServerBusy      = "Server is busy"
	MsgTimeout         = "Request timed out"
	MsgBodyTooLarge    = "Request body too large"
)

// CodeMsgMap 状态码的默认文案
var CodeMsgMap = map[int]string{
	http.StatusBadRequest:            MsgInvalidData,
	http.StatusUnauthorized:          MsgUnauthorized,
	http.StatusNotFound:              MsgRouteNotFound,
	http.StatusConflict:              MsgDuplicate,
	http.StatusRequestEntityTooLarge: MsgBodyTooLarge,
	http.StatusTooManyRequests:       MsgTooManyRequests,
	http.StatusInternalServerError:   MsgServerError,
	http.StatusServiceUnavailable:    MsgServerBusy,
	http.StatusGatewayTimeout:        MsgTimeout,
}
