package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wtwr-api/internal/core/storage"
	resp "wtwr-api/internal/transport/http/response"
	"wtwr-api/internal/upload"
	"wtwr-api/internal/validate"
)

// UploadHandler 回源 /uploads/<name>
type UploadHandler struct {
	store storage.FileStore
}

func NewUploadHandler(store storage.FileStore) *UploadHandler { return &UploadHandler{store: store} }

func (h *UploadHandler) Priority() int { return 10 }

func (h *UploadHandler) MountAPI(g *gin.RouterGroup) {
	g.GET("/uploads/:name", h.serve)
	g.HEAD("/uploads/:name", h.serve)
}

func (h *UploadHandler) serve(c *gin.Context) {
	name := c.Param("name")
	if !validate.IsUploadName(name) {
		resp.Abort(c, http.StatusNotFound)
		return
	}
	obj, err := h.store.Open(c.Request.Context(), name)
	if errors.Is(err, storage.ErrNotExist) {
		resp.Abort(c, http.StatusNotFound)
		return
	}
	if err != nil {
		resp.Fail(c, err)
		return
	}
	defer obj.Body.Close()

	ct := obj.ContentType
	if ct == "" {
		ct = upload.ContentType(name)
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, ct, obj.Body, nil)
}
