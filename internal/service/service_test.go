package service

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"example.com/glams-api/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Admin{}, &model.Product{}, &model.Order{}))
	return db
}

func str(s string) *string { return &s }

type fakeImageStore struct {
	nextID    int
	saved     []string
	removed   []string
	removeErr error
}

func (f *fakeImageStore) Save(ext string, content io.Reader) (string, error) {
	io.Copy(io.Discard, content)
	f.nextID++
	url := fmt.Sprintf("http://img.local/uploads/product-%d.%s", f.nextID, ext)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeImageStore) Remove(publicURL string) error {
	f.removed = append(f.removed, publicURL)
	return f.removeErr
}
