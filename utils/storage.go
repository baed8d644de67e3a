package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// MaxListingImages caps how many files one upload may carry.
const MaxListingImages = 4

// RoomStorage keeps listing images on local disk under one directory per
// listing title. File removal is best-effort: failures are logged and the
// caller's database state stays authoritative.
type RoomStorage struct {
	Root string // e.g. ./public/rooms
}

func NewRoomStorage(root string) *RoomStorage {
	return &RoomStorage{Root: root}
}

func (s *RoomStorage) dir(title string) string {
	return filepath.Join(s.Root, title)
}

// SaveImages writes the multipart "images" files for the listing and
// returns their public URLs. The directory is created on first upload.
func (s *RoomStorage) SaveImages(c *fiber.Ctx, title string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil // no multipart body, nothing to save
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > MaxListingImages {
		return nil, fmt.Errorf("at most %d images are allowed", MaxListingImages)
	}

	dir := s.dir(title)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		name := strings.ReplaceAll(file.Filename, " ", "")
		if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", name, err)
		}
		urls = append(urls, "/public/rooms/"+title+"/"+name)
	}
	return urls, nil
}

// RemoveFile deletes the backing file for an image URL. Errors are logged,
// never returned: the image row is already gone.
func (s *RoomStorage) RemoveFile(url string) {
	if url == "" {
		return
	}
	path := filepath.Join(".", filepath.FromSlash(strings.TrimPrefix(url, "/")))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warnf("failed to delete file %s", path)
	}
}

// RemoveDir drops the whole per-listing directory after a listing delete.
func (s *RoomStorage) RemoveDir(title string) {
	dir := s.dir(title)
	if err := os.RemoveAll(dir); err != nil {
		logrus.WithError(err).Warnf("failed to delete directory %s", dir)
	}
}
