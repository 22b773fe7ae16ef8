package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/errors"
)

// Image formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists every supported image format.
var Formats = []string{FormatSVG, FormatPNG}

// DefaultFormats is used when no format is configured.
var DefaultFormats = []string{FormatSVG}

// ParseFormats splits a comma-separated format list, trimming blanks and
// lower-casing. An empty string yields DefaultFormats.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return slices.Clone(DefaultFormats)
	}
	return out
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(Formats, f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %s (must be one of %s)", f, strings.Join(Formats, ", "))
		}
	}
	return nil
}
