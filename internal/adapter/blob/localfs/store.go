// Package localfs keeps artifacts under the data directory and serves them
// through the HTTP file route.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

var ErrInvalidKey = errors.New("invalid artifact key")

type Store struct {
	root    string
	baseURL string
}

// New stores artifacts below root. URLs are baseURL + "/files/" + key.
func New(root, baseURL string) *Store {
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Path resolves key to a file below the root. Keys that escape the root
// are rejected.
func (s *Store) Path(key string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + "/files/" + strings.TrimPrefix(key, "/")
}

// Put moves nothing when localPath already sits at the key's location,
// which is the case for files written into the job directory.
func (s *Store) Put(ctx context.Context, key, localPath, _ string) (domain.StoredObject, error) {
	dst, err := s.Path(key)
	if err != nil {
		return domain.StoredObject{}, err
	}

	same, err := samePath(localPath, dst)
	if err != nil {
		return domain.StoredObject{}, err
	}
	if !same {
		if err := copyFile(ctx, localPath, dst); err != nil {
			return domain.StoredObject{}, fmt.Errorf("store %s: %w", key, err)
		}
	}

	info, err := os.Stat(dst)
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("stat %s: %w", key, err)
	}
	return domain.StoredObject{
		Location: dst,
		URL:      s.URL(key),
		Size:     info.Size(),
	}, nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

func copyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

var _ port.ArtifactStore = (*Store)(nil)
