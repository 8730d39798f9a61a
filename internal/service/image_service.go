package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"loopcraft/internal/config"
	"loopcraft/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultImageUploadDir       = "/tmp/loopcraft/uploads/images"
	DefaultImageMaxUploadSizeMB = 10
	MaxImageDimension           = 2048
	WebPQuality                 = 80
)

// ImageService validates and stores uploaded images. Every upload is decoded,
// bounded to MaxImageDimension and re-encoded as WebP under a content-derived
// name, so the same bytes never occupy disk twice.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
	baseURL            string
}

type StoreImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB
	baseURL := ""

	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
		baseURL = cfg.ImageBaseURL()
	}

	return &ImageService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		baseURL:            baseURL,
	}
}

// Store persists an uploaded image and returns its relative path for storage
// on a model field.
func (s *ImageService) Store(in StoreImageInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(
			fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	bounded := resizeToFit(decoded, MaxImageDimension, MaxImageDimension)
	encoded, err := encodeWebP(bounded, WebPQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	sum := sha256.Sum256(encoded)
	name := hex.EncodeToString(sum[:])
	rel := filepath.ToSlash(filepath.Join(name[:2], name+".webp"))
	abs := filepath.Join(s.uploadDir, rel)

	if err := writeBytesToFile(abs, encoded); err != nil {
		return "", models.NewInternalError(err)
	}
	return rel, nil
}

// Resolve turns a stored relative path into an absolute URL. An empty path
// resolves to an empty string, never a broken link.
func (s *ImageService) Resolve(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.baseURL + path
}

// UploadDir exposes the storage root for static file serving.
func (s *ImageService) UploadDir() string {
	return s.uploadDir
}

func isAllowedImageMIME(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
