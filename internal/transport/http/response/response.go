package response

import (
	"github.com/gin-gonic/gin"
)

// Message 所有错误响应与删除成功响应的结构
type Message struct {
	Message string `json:"message"`
}

func Msg(msg string) Message { return Message{Message: msg} }

// Error 按状态码取默认文案（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Message {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	if msg == "" {
		msg = MsgServerError
	}
	return Msg(msg)
}

// Fail 分类错误并终止请求；原始错误挂到 c.Errors 供访问日志输出
func Fail(c *gin.Context, err error) {
	status, msg := Classify(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, Msg(msg))
}

// Abort 中间件直接拒绝
func Abort(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, Error(status, ""))
}
