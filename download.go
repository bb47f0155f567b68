package tempmail

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/tempmail/client-go/internal/api"
)

// DownloadResult describes a completed attachment download.
type DownloadResult struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
	// Checksum is the hex BLAKE2b-256 digest of the written bytes.
	Checksum string `json:"checksum"`
}

// DownloadAttachment fetches filename of message id and writes it to dest,
// replacing any existing file.
//
// The body goes to a temporary file next to dest, which is renamed over
// dest only after the whole body was received and synced. On failure the
// temporary file is removed and dest is left as it was. A failure while
// receiving the body is a *NetworkError.
//
// The service decides whether filename belongs to message id.
func (c *Client) DownloadAttachment(ctx context.Context, id int, filename, dest string) (*DownloadResult, error) {
	if _, err := c.boundAddress(); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	hash, _ := blake2b.New256(nil)
	n, err := c.DownloadAttachmentTo(ctx, id, filename, io.MultiWriter(tmp, hash))
	if err != nil {
		return nil, err
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return nil, fmt.Errorf("rename to %s: %w", dest, err)
	}
	committed = true

	result := &DownloadResult{
		Path:     dest,
		Size:     n,
		Checksum: hex.EncodeToString(hash.Sum(nil)),
	}
	c.logger.Debug("attachment downloaded",
		zap.Int("id", id),
		zap.String("filename", filename),
		zap.String("path", dest),
		zap.Int64("size", n),
	)
	return result, nil
}

// DownloadAttachmentTo streams filename of message id into w and returns the
// number of bytes written. Bytes already written to w stay there on failure.
func (c *Client) DownloadAttachmentTo(ctx context.Context, id int, filename string, w io.Writer) (int64, error) {
	addr, err := c.boundAddress()
	if err != nil {
		return 0, err
	}
	tc, err := c.transport()
	if err != nil {
		return 0, err
	}

	body, err := tc.Download(ctx, addr.Local, addr.Domain, id, filename)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	src := &readErrorRecorder{r: body}
	n, err := io.Copy(w, src)
	if err != nil {
		if src.err != nil {
			return n, &NetworkError{Err: src.err, Action: api.ActionDownload}
		}
		return n, fmt.Errorf("write attachment: %w", err)
	}
	return n, nil
}

// readErrorRecorder remembers the error of the last failed Read so
// io.Copy failures can be attributed to the source or the destination.
type readErrorRecorder struct {
	r   io.Reader
	err error
}

func (r *readErrorRecorder) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF {
		r.err = err
	}
	return n, err
}
