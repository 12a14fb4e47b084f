package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wtwr-api/internal/domain"
	"wtwr-api/internal/transport/http/ez"
	mdw "wtwr-api/internal/transport/http/middleware"
	resp "wtwr-api/internal/transport/http/response"
	"wtwr-api/internal/upload"
)

type ItemHandler struct {
	items   domain.ItemService
	uploads *upload.Ingestor
	log     *zap.Logger
}

func NewItemHandler(items domain.ItemService, uploads *upload.Ingestor, log *zap.Logger) *ItemHandler {
	return &ItemHandler{items: items, uploads: uploads, log: log}
}

// createItemIn JSON 与 multipart 共用
type createItemIn struct {
	Name     string `json:"name"     form:"name"`
	Weather  string `json:"weather"  form:"weather"`
	ImageURL string `json:"imageUrl" form:"imageUrl"`
}

func (h *ItemHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.ClothingItem]{
		Method: http.MethodGet,
		Path:   "/items",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.ClothingItem, error) {
			return h.items.List(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[createItemIn, *domain.ClothingItem]{
		Method:  http.MethodPost,
		Path:    "/items",
		Binder:  ez.BindBody,
		Status:  http.StatusCreated,
		Handler: h.create,
	})

	ez.RegisterAction(e, ez.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/items/:itemId",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			if err := h.items.Delete(c.Request.Context(), mdw.CallerID(c), c.Param("itemId")); err != nil {
				return resp.Message{}, err
			}
			return resp.Msg(resp.MsgItemDeleted), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.ClothingItem]{
		Method: http.MethodPut,
		Path:   "/items/:itemId/likes",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.ClothingItem, error) {
			return h.items.Like(c.Request.Context(), mdw.CallerID(c), c.Param("itemId"))
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.ClothingItem]{
		Method: http.MethodDelete,
		Path:   "/items/:itemId/likes",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.ClothingItem, error) {
			return h.items.Unlike(c.Request.Context(), mdw.CallerID(c), c.Param("itemId"))
		},
	})
}

func (h *ItemHandler) create(c *gin.Context, in *createItemIn) (*domain.ClothingItem, error) {
	ctx := c.Request.Context()
	ci := domain.CreateItemInput{Name: in.Name, Weather: in.Weather, ImageURL: in.ImageURL}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile(upload.FieldName)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return nil, domain.ValidationError(err)
		default:
			name, err := h.uploads.Ingest(ctx, fh)
			switch {
			case errors.Is(err, upload.ErrRejected):
				h.log.Debug("upload rejected", zap.String("file", fh.Filename), zap.Error(err))
				ci.UploadRejected = true
			case err != nil:
				return nil, err
			default:
				ci.UploadName = name
			}
		}
	}

	it, err := h.items.Create(ctx, mdw.CallerID(c), ci)
	if err != nil {
		if derr := h.uploads.Discard(ctx, ci.UploadName); derr != nil {
			h.log.Warn("discard upload failed", zap.String("file", ci.UploadName), zap.Error(derr))
		}
		return nil, err
	}
	return it, nil
}
