package photo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-]`)

// localStore implements Store on the local file system. Oversized images are
// downscaled before writing; files that do not decode as images are stored
// verbatim.
type localStore struct {
	dir        string
	publicPath string
	maxWidth   int
	logger     zerolog.Logger
}

// NewLocalStore creates a disk-backed photo store rooted at dir. Stored files
// are addressed under publicPath (e.g. "/uploads"). maxWidth of 0 disables
// downscaling.
func NewLocalStore(dir, publicPath string, maxWidth int, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStore{
		dir:        dir,
		publicPath: publicPath,
		maxWidth:   maxWidth,
		logger:     logger.With().Str("component", "local-photo-store").Logger(),
	}, nil
}

// storedName derives a collision-resistant file name from the original:
// sanitised base, timestamp suffix, original extension.
func storedName(filename string) string {
	ext := filepath.Ext(filename)
	base := unsafeChars.ReplaceAllString(filepath.Base(filename[:len(filename)-len(ext)]), "_")
	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixMilli(), ext)
}

// Save writes the photo to disk and returns its public URL.
func (s *localStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	if s.maxWidth > 0 {
		if scaled, ok := s.downscale(data); ok {
			data = scaled
		}
	}

	name := storedName(filename)
	dest := filepath.Join(s.dir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", dest).Msg("failed to write photo")
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	s.logger.Debug().Str("file", name).Int("bytes", len(data)).Msg("photo stored")

	return path.Join(s.publicPath, name), nil
}

// downscale re-encodes images wider than maxWidth. Returns false when the
// payload is not a decodable image, in which case the original bytes are
// stored unchanged.
func (s *localStore) downscale(data []byte) ([]byte, bool) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	if img.Bounds().Dx() <= s.maxWidth {
		return nil, false
	}

	scaled := resize.Resize(uint(s.maxWidth), 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, scaled)
	default:
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("format", format).Msg("failed to re-encode resized photo, storing original")
		return nil, false
	}

	return buf.Bytes(), true
}

// Delete removes a stored photo by its public URL. Only the base name is
// honoured so a crafted URL cannot escape the upload directory.
func (s *localStore) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	target := filepath.Join(s.dir, filepath.Base(url))
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.logger.Warn().Err(err).Str("path", target).Msg("failed to delete photo")
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
