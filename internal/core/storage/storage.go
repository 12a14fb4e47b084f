// Package storage 上传文件的落盘后端：本地目录（afero）或 S3 兼容对象存储。
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotExist = errors.New("storage: object does not exist")

type Object struct {
	Body        io.ReadCloser
	Size        int64  // 未知时为 -1
	ContentType string // 可能为空
}

type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) error
	Open(ctx context.Context, name string) (*Object, error)
	Delete(ctx context.Context, name string) error
}
