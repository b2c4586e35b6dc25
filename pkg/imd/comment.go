// file: pkg/imd/comment.go

package imd

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	CommentTerminator = 0x1A
	Signature         = "IMD "
)

// Comment is the free-form header that precedes the track records.
type Comment struct {
	Raw       []byte `json:"-"`
	Signed    bool   `json:"signed"`              // starts with "IMD "
	Version   string `json:"version,omitempty"`   // e.g. "1.18"
	Timestamp string `json:"timestamp,omitempty"` // as written by the imaging tool
	Text      string `json:"text"`
}

// parseComment splits the signature line from the user comment. ImageDisk
// writes the comment in the DOS code page, so it is decoded from CP437.
func parseComment(raw []byte) *Comment {
	c := &Comment{Raw: append([]byte(nil), raw...)}

	text := string(raw)
	if decoded, err := charmap.CodePage437.NewDecoder().Bytes(raw); err == nil {
		text = string(decoded)
	}

	if !strings.HasPrefix(text, Signature) {
		c.Text = strings.TrimRight(text, "\r\n")
		return c
	}
	c.Signed = true

	line, rest, _ := strings.Cut(text, "\n")
	line = strings.TrimRight(line, "\r")
	line = strings.TrimPrefix(line, Signature)

	version, stamp, found := strings.Cut(line, ":")
	c.Version = strings.TrimSpace(version)
	if found {
		c.Timestamp = strings.TrimSpace(stamp)
	}
	c.Text = strings.TrimRight(rest, "\r\n")

	return c
}
