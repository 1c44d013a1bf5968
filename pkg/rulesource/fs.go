package rulesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// FSSource reads "<prefix>/<key>.yaml" from a file system. It serves both
// embedded rule files and a directory on disk via os.DirFS.
type FSSource struct {
	fsys   fs.FS
	prefix string
}

// NewFSSource creates a source over fsys. prefix is a directory inside fsys
// and may be empty.
func NewFSSource(fsys fs.FS, prefix string) *FSSource {
	return &FSSource{fsys: fsys, prefix: prefix}
}

func (s *FSSource) Load(ctx context.Context, key string) ([]byte, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, objectName(s.prefix, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSpecNotFound, key)
	}
	if err != nil {
		return nil, errors.Join(ErrSourceUnavailable, err)
	}
	return data, nil
}
