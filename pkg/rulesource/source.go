package rulesource

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/ruleset"
)

// DefaultExt is appended to keys by sources backed by files or objects.
const DefaultExt = ".yaml"

// Source returns raw rule spec documents by key. A key names one form, for
// example "main-form".
type Source interface {
	Load(ctx context.Context, key string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, key string) ([]byte, error)

func (f SourceFunc) Load(ctx context.Context, key string) ([]byte, error) { return f(ctx, key) }

// LoadSpec loads key from src and decodes it. Decoder options such as
// ruleset.WithNamedPatterns are passed through.
func LoadSpec(ctx context.Context, src Source, key string, opts ...ruleset.DecodeOption) (ruleset.Spec, error) {
	data, err := src.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	spec, err := ruleset.Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("rule spec %q: %w", key, err)
	}
	return spec, nil
}

// CheckKey rejects keys that are empty or could escape the source root.
func CheckKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for part := range strings.SplitSeq(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

func objectName(prefix, key string) string {
	if prefix == "" {
		return key + DefaultExt
	}
	return path.Join(prefix, key+DefaultExt)
}

// IsNotFound reports whether err means the key has no document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSpecNotFound)
}
