package blob

import (
	"context"
	"mime/multipart"
	"sync"
)

// MemoryService keeps blobs in a map. Used by tests and local tooling.
type MemoryService struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryService() *MemoryService {
	return &MemoryService{blobs: make(map[string][]byte)}
}

func (s *MemoryService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	return s.UploadFile(ctx, dir, fh)
}

func (s *MemoryService) UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	data, err := readAll(fh)
	if err != nil {
		return "", err
	}
	ref := GenerateUniqueFilename(dir, fh.Filename)
	s.mu.Lock()
	s.blobs[ref] = data
	s.mu.Unlock()
	return ref, nil
}

func (s *MemoryService) Delete(ctx context.Context, ref string) error {
	s.mu.Lock()
	delete(s.blobs, ref)
	s.mu.Unlock()
	return nil
}

func (s *MemoryService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
