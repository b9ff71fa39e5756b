// Package media turns client supplied media payloads into bytes and
// classifies them by content.
package media

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"bizprofile/internal/apperror"
)

const OctetStream = "application/octet-stream"

// Category values stored on models.Media.
const (
	CategoryImage = "image"
	CategoryVideo = "video"
)

// dataURIPrefixes are the data URI headers the frontend is known to send.
// Any other header is left in place and fails base64 decoding.
var dataURIPrefixes = []string{
	"data:image/jpeg;base64,",
	"data:image/png;base64,",
	"data:image/gif;base64,",
	"data:image/webp;base64,",
	"data:video/mp4;base64,",
	"data:video/quicktime;base64,",
	"data:video/webm;base64,",
}

// StripDataURI removes a recognised data URI header, returning the payload
// unchanged when none matches.
func StripDataURI(payload string) string {
	payload = strings.TrimSpace(payload)
	for _, prefix := range dataURIPrefixes {
		if strings.HasPrefix(payload, prefix) {
			return payload[len(prefix):]
		}
	}
	return payload
}

// Decode accepts either a raw base64 blob or a data URI and returns the
// decoded bytes.
func Decode(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(StripDataURI(payload))
	if err != nil {
		return nil, apperror.Decode(err)
	}
	return data, nil
}

// DetectMIME classifies data by its signature. The caller's data URI header
// is never consulted.
func DetectMIME(data []byte) string {
	m := mimetype.Detect(data)
	// text/plain is mimetype's fallback for anything that merely looks
	// like UTF-8, not a signature match.
	if m.Is(OctetStream) || m.Is("text/plain") {
		return OctetStream
	}
	mime, _, _ := strings.Cut(m.String(), ";")
	return mime
}

// Extension returns the file extension (with leading dot) for a payload,
// or an empty string when the type is unknown.
func Extension(data []byte) string {
	if DetectMIME(data) == OctetStream {
		return ""
	}
	return mimetype.Detect(data).Extension()
}

// Category reduces a MIME type to the coarse kind stored with profile media.
func Category(mime string) string {
	if strings.HasPrefix(mime, "video/") {
		return CategoryVideo
	}
	return CategoryImage
}

// IsURL reports whether a payload is already a link rather than embedded bytes.
func IsURL(payload string) bool {
	return strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://")
}
