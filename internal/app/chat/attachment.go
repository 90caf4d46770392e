package chat

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dkeye/Live/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

// decodeAttachment turns a base64 payload (optionally a data URL) into an
// attachment, detecting the type when the client did not send one.
func decodeAttachment(file, fileType string) (*Attachment, error) {
	raw := file
	if strings.HasPrefix(raw, "data:") {
		header, body, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, fmt.Errorf("malformed data url: %w", domain.ErrInvalidRequest)
		}
		raw = body
		if fileType == "" {
			fileType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("attachment not base64: %w", domain.ErrInvalidRequest)
	}
	mt := normalizeType(fileType)
	if mt == "" {
		mt = normalizeType(mimetype.Detect(data).String())
	}
	return &Attachment{MIMEType: mt, Data: data}, nil
}

// normalizeType accepts full MIME types and the short forms the web client sends.
func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	t, _, _ = strings.Cut(t, ";")
	switch t {
	case "pdf":
		return "application/pdf"
	case "image":
		return "image/jpeg"
	case "text", "txt":
		return "text/plain"
	}
	return t
}

// Supported reports whether the assistant can take the attachment as input.
func (a *Attachment) Supported() bool {
	switch {
	case a == nil:
		return false
	case strings.HasPrefix(a.MIMEType, "image/"),
		strings.HasPrefix(a.MIMEType, "text/"),
		a.MIMEType == "application/pdf":
		return true
	}
	return false
}

func (a *Attachment) IsText() bool {
	return a != nil && strings.HasPrefix(a.MIMEType, "text/")
}
