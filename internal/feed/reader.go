package feed

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEncodings is the decode fallback chain tried in order. Latin-1 and
// Windows-1252 accept any byte sequence, so the chain always produces text.
var DefaultEncodings = []string{"utf-8", "iso-8859-1", "windows-1252"}

// Reader loads raw transaction feeds from disk or memory, tolerating the
// mixed encodings legacy exports arrive in.
type Reader struct {
	encodings []string
	log       zerolog.Logger
}

// NewReader builds a feed reader. An empty encoding list falls back to
// DefaultEncodings.
func NewReader(encodings []string, log zerolog.Logger) *Reader {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	return &Reader{encodings: encodings, log: log}
}

// Lines reads the feed file at path and returns its data lines: the header
// line is dropped and blank lines are skipped. A missing or unreadable file
// is logged and yields an empty result rather than an error, so a bad path
// flows through the pipeline as zero records.
func (r *Reader) Lines(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("feed file unreadable")
		return nil
	}
	return r.LinesFromBytes(raw)
}

// LinesFromBytes decodes an in-memory feed (an uploaded file, typically) and
// splits it into data lines the same way Lines does.
func (r *Reader) LinesFromBytes(raw []byte) []string {
	text, encoding, err := r.decode(raw)
	if err != nil {
		r.log.Warn().Err(err).Msg("feed decode failed under every configured encoding")
		return nil
	}
	if encoding != "utf-8" {
		r.log.Debug().Str("encoding", encoding).Msg("feed decoded with fallback encoding")
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > 0 {
		// First line is the column header.
		lines = lines[1:]
	}

	data := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		data = append(data, line)
	}
	return data
}

// decode tries each configured encoding in order and returns the first
// successful decode along with the encoding name that produced it.
func (r *Reader) decode(raw []byte) (string, string, error) {
	var lastErr error
	for _, name := range r.encodings {
		text, err := decodeAs(raw, name)
		if err == nil {
			return text, name, nil
		}
		lastErr = err
	}
	return "", "", lastErr
}

func decodeAs(raw []byte, name string) (string, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("invalid utf-8 sequence")
		}
		return string(raw), nil
	case "iso-8859-1", "latin-1", "latin1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case "windows-1252", "cp1252":
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
}
