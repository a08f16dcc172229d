// Package storage holds product images. The original deployment kept these in
// a hosted bucket; here they live on local disk behind the same save/remove
// contract and are served back as static files.
package storage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type ImageStore interface {
	// Save writes the image and returns its public URL.
	Save(ext string, content io.Reader) (string, error)
	// Remove deletes the file behind a public URL previously returned by
	// Save. A missing file is not an error.
	Remove(publicURL string) error
}

type DiskStore struct {
	dir     string // local directory holding image files
	baseURL string // public prefix, e.g. http://host:8080/uploads
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Save(ext string, content io.Reader) (string, error) {
	name := fmt.Sprintf("product-%s.%s", uuid.NewString(), strings.TrimPrefix(ext, "."))
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return s.baseURL + "/" + name, nil
}

func (s *DiskStore) Remove(publicURL string) error {
	if publicURL == "" {
		return nil
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return err
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return nil
	}
	err = os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
