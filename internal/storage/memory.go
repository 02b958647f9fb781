package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-process ObjectStorage used for local runs and tests.
type MemoryStorage struct {
	mu      sync.Mutex
	baseURL string
	files   map[string][]byte
}

var _ ObjectStorage = (*MemoryStorage)(nil)

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		files:   make(map[string][]byte),
	}
}

func (m *MemoryStorage) Upload(ctx context.Context, filename string, r io.Reader, preset Preset) (UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to read upload: %w", err)
	}

	key := path.Join(string(preset), uuid.NewString()+path.Ext(filename))

	m.mu.Lock()
	m.files[key] = data
	m.mu.Unlock()

	result := UploadResult{URL: m.baseURL + "/" + key}
	if preset != PresetDocument {
		result.ThumbnailURL = m.baseURL + "/thumb/" + key
	}

	return result, nil
}

func (m *MemoryStorage) Delete(_ context.Context, p string) error {
	key := strings.TrimPrefix(strings.TrimPrefix(p, m.baseURL), "/")

	m.mu.Lock()
	delete(m.files, key)
	m.mu.Unlock()

	return nil
}

func (m *MemoryStorage) SignedURL(_ context.Context, p string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("%s/%s?expires=%d", m.baseURL, strings.TrimPrefix(p, "/"), time.Now().Add(ttl).Unix()), nil
}

// Len reports the number of stored files. Test helper.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.files)
}
