package blob

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

/*
Service is the upload facade controllers talk to. A stored blob is identified
by the reference string returned here; the core only ever persists that
reference, never the bytes.
*/
type Service interface {
	// UploadImage re-encodes to WebP before storing.
	UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (ref string, err error)
	// UploadFile stores the blob as-is.
	UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (ref string, err error)
	Delete(ctx context.Context, ref string) error
}

// --------------------------------------------------
// Local disk implementation
// --------------------------------------------------

type LocalService struct {
	Root string
}

func NewLocalService(root string) *LocalService {
	return &LocalService{Root: root}
}

func (s *LocalService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	data, err := readAll(fh)
	if err != nil {
		return "", err
	}
	webpData, err := EncodeWebP(data)
	if err != nil {
		// not a decodable image; keep the original bytes
		return s.store(dir, fh.Filename, data)
	}
	name := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + ".webp"
	return s.store(dir, name, webpData)
}

func (s *LocalService) UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	data, err := readAll(fh)
	if err != nil {
		return "", err
	}
	return s.store(dir, fh.Filename, data)
}

func (s *LocalService) Delete(ctx context.Context, ref string) error {
	full := filepath.Join(s.Root, filepath.FromSlash(ref))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalService) store(dir, originalName string, data []byte) (string, error) {
	ref := GenerateUniqueFilename(dir, originalName)
	full := filepath.Join(s.Root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("blob dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("blob write: %w", err)
	}
	return ref, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return io.ReadAll(src)
}

// ✅ unique, collision-free object key
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameChars.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(dir, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	uuidStr := uuid.New().String()
	safeFilename := sanitizeFilename(originalFilename)
	return fmt.Sprintf("%s/%s-%s-%s", dir, timestamp, uuidStr, safeFilename)
}
