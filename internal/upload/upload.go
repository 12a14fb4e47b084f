// Package upload 处理物品图片上传：类型/大小校验、命名、写入 FileStore。
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"wtwr-api/internal/core/storage"
)

const (
	FieldName       = "image"
	DefaultMaxBytes = 5 << 20
)

// ErrRejected 文件过大或不是允许的图片类型
var ErrRejected = errors.New("upload: only image files are allowed")

var allowedExt = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

var allowedMIME = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type Ingestor struct {
	store    storage.FileStore
	maxBytes int64
	now      func() time.Time
}

func NewIngestor(store storage.FileStore, maxBytes int64) *Ingestor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Ingestor{store: store, maxBytes: maxBytes, now: time.Now}
}

// Ingest 校验并保存，返回落盘文件名 <unix 毫秒>-<原文件名>
func (in *Ingestor) Ingest(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > in.maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrRejected, fh.Size, in.maxBytes)
	}
	base := filepath.Base(strings.ReplaceAll(fh.Filename, `\`, "/"))
	if _, ok := allowedExt[strings.ToLower(filepath.Ext(base))]; !ok {
		return "", fmt.Errorf("%w: extension of %q", ErrRejected, base)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: open %s: %w", base, err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("upload: sniff %s: %w", base, err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedMIME...) {
		return "", fmt.Errorf("%w: content is %s", ErrRejected, mt.String())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("upload: rewind %s: %w", base, err)
	}

	name := fmt.Sprintf("%d-%s", in.now().UnixMilli(), base)
	if err := in.store.Save(ctx, name, io.LimitReader(f, in.maxBytes+1), mt.String()); err != nil {
		return "", err
	}
	return name, nil
}

// Discard 物品创建失败时清理已保存的文件
func (in *Ingestor) Discard(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return in.store.Delete(ctx, name)
}

// ContentType 按扩展名推断，供回源时缺少类型的后端使用
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
