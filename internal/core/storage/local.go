package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"
)

type LocalStore struct {
	fs afero.Fs
}

// NewLocal 以 dir 为根目录，目录不存在时创建
func NewLocal(dir string) (*LocalStore, error) {
	base := afero.NewOsFs()
	if err := base.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return NewLocalFs(afero.NewBasePathFs(base, dir)), nil
}

func NewLocalFs(fs afero.Fs) *LocalStore { return &LocalStore{fs: fs} }

func (s *LocalStore) Save(_ context.Context, name string, r io.Reader, _ string) error {
	p, err := clean(name)
	if err != nil {
		return err
	}
	return afero.WriteReader(s.fs, p, r)
}

func (s *LocalStore) Open(_ context.Context, name string) (*Object, error) {
	p, err := clean(name)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, ErrNotExist
	}
	return &Object{Body: f, Size: st.Size()}, nil
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	p, err := clean(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// clean 只接受单层文件名
func clean(name string) (string, error) {
	if name == "" || name != path.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("storage: invalid object name %q", name)
	}
	return "/" + name, nil
}
