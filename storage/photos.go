// Package storage keeps the photos attached to report drafts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPhotoNotFound is returned for keys the store does not hold.
var ErrPhotoNotFound = errors.New("photo not found")

// PhotoStore holds opaque photo blobs under a key.
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	// URL returns a link the client can use to preview the photo.
	URL(ctx context.Context, key string) (string, error)
}

// DraftPhotoKey builds the object key for a photo attached to a draft:
// drafts/{draftID}/{timestamp}_{uuid}{ext}.
func DraftPhotoKey(draftID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("drafts/%s/%d_%s%s", draftID, time.Now().Unix(), uuid.New().String(), ext)
}

type memoryObject struct {
	contentType string
	data        []byte
}

// MemoryStore is the default PhotoStore. Photos live only as long as the process.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

func (m *MemoryStore) Put(_ context.Context, key, contentType string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{contentType: contentType, data: buf}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) URL(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", ErrPhotoNotFound
	}
	return "memory://" + key, nil
}

// Get returns the stored bytes and content type.
func (m *MemoryStore) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
