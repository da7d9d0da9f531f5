package preview

import (
	"errors"
	"fmt"
	"os"
)

// ErrHandleRevoked is returned when a revoked handle is read.
var ErrHandleRevoked = errors.New("preview document has been released")

// Handle is a revocable reference to the decoded PDF bytes of one preview.
// The pipeline guarantees at most one live handle at a time; Revoke is
// idempotent and safe on an already-released handle.
type Handle struct {
	fileName string
	data     []byte
	revoked  bool
}

func newHandle(data []byte, fileName string) *Handle {
	return &Handle{data: data, fileName: fileName}
}

// Bytes returns the document bytes while the handle is live.
func (h *Handle) Bytes() ([]byte, error) {
	if h == nil || h.revoked {
		return nil, ErrHandleRevoked
	}
	return h.data, nil
}

// FileName returns the suggested download file name.
func (h *Handle) FileName() string {
	if h == nil {
		return ""
	}
	return h.fileName
}

// Live reports whether the handle still references its buffer.
func (h *Handle) Live() bool {
	return h != nil && !h.revoked
}

// SaveTo writes the document to path, the download affordance of the
// preview modal.
func (h *Handle) SaveTo(path string) error {
	data, err := h.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save preview document: %w", err)
	}
	return nil
}

// Revoke releases the underlying buffer. Calling it again is a no-op.
func (h *Handle) Revoke() {
	if h == nil || h.revoked {
		return
	}
	h.revoked = true
	h.data = nil
}
