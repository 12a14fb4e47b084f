package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wtwr-api/internal/domain"
	"wtwr-api/internal/transport/http/ez"
	resp "wtwr-api/internal/transport/http/response"
)

type UserHandler struct {
	users domain.UserService
}

func NewUserHandler(users domain.UserService) *UserHandler { return &UserHandler{users: users} }

type createUserIn struct {
	Name   string `json:"name"   form:"name"`
	Avatar string `json:"avatar" form:"avatar"`
}

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.users.List(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:userId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.users.Get(c.Request.Context(), c.Param("userId"))
		},
	})

	ez.RegisterAction(e, ez.Action[createUserIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindBody,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createUserIn) (*domain.User, error) {
			return h.users.Create(c.Request.Context(), domain.CreateUserInput{Name: in.Name, Avatar: in.Avatar})
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/users/:userId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			if err := h.users.Delete(c.Request.Context(), c.Param("userId")); err != nil {
				return resp.Message{}, err
			}
			return resp.Msg(resp.MsgUserDeleted), nil
		},
	})
}
