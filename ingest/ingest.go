// Package ingest converts user-selected files into message attachments.
//
// Only images are accepted; anything else is silently dropped, matching
// the file-picker behavior of the UI layer. Results preserve selection
// order.
package ingest

import (
	"encoding/base64"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/supernova"
)

// Ingestor reads selected files into attachments.
type Ingestor struct {
	log *slog.Logger
}

// New creates an Ingestor. A nil logger discards log output.
func New(log *slog.Logger) *Ingestor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Ingestor{log: log}
}

// Files reads each path in order and returns the attachments for those
// that are readable images. Unreadable files and non-images are skipped
// without error.
func (i *Ingestor) Files(paths ...string) []supernova.Attachment {
	var out []supernova.Attachment
	for _, path := range paths {
		att, ok := i.file(path)
		if ok {
			out = append(out, att)
		}
	}
	return out
}

func (i *Ingestor) file(path string) (supernova.Attachment, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		i.log.Warn("read attachment", "path", path, "error", err)
		return supernova.Attachment{}, false
	}
	mimeType := detectMime(path, data)
	if !strings.HasPrefix(mimeType, "image/") {
		i.log.Debug("skip non-image attachment", "path", path, "mime", mimeType)
		return supernova.Attachment{}, false
	}
	return supernova.Attachment{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, true
}

// detectMime resolves the MIME type from the file extension, falling back
// to content sniffing. Parameters (e.g. "; charset=") are stripped.
func detectMime(path string, data []byte) string {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}
