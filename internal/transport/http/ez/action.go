// Package ez 把 (入参 → 出参, error) 形式的处理函数注册为 gin 路由，统一绑定和错误映射。
package ez

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wtwr-api/internal/domain"
	resp "wtwr-api/internal/transport/http/response"
)

type Binder string

const (
	BindBody Binder = "body" // 按 Content-Type 绑定 JSON / form / multipart
	BindNone Binder = "none" // 不绑定，自己从 c.Param 取
)

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Status  int // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

type EZ struct{ g gin.IRoutes }

func New(g gin.IRoutes) EZ { return EZ{g: g} }

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		if a.Binder == BindBody {
			if err := c.ShouldBind(&in); err != nil {
				resp.Fail(c, domain.ValidationError(err))
				return
			}
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			resp.Fail(c, err)
			return
		}
		c.JSON(status, out)
	}
	e.g.Handle(a.Method, a.Path, h)
}
