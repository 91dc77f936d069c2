package errors

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxPathLength bounds file paths accepted from the command line or settings.
const maxPathLength = 4096

// ValidatePath checks a file path supplied by the user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 bytes
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateExtension checks that path ends in one of the allowed extensions
// (compared case-insensitively, including the leading dot).
func ValidateExtension(path string, allowed ...string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if slices.Contains(allowed, ext) {
		return nil
	}
	if ext == "" {
		return New(ErrCodeUnsupported, "file %q has no extension (want one of %s)", filepath.Base(path), strings.Join(allowed, ", "))
	}
	return New(ErrCodeUnsupported, "unsupported file type %q (want one of %s)", ext, strings.Join(allowed, ", "))
}

// maxSheetNameLength is the spreadsheet limit on worksheet names.
const maxSheetNameLength = 31

// ValidateSheetName applies the worksheet naming rules: 1 to 31 characters,
// none of : \ / ? * [ ], and no leading or trailing apostrophe.
func ValidateSheetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "sheet name cannot be empty")
	}

	if utf8.RuneCountInString(name) > maxSheetNameLength {
		return New(ErrCodeInvalidInput, "sheet name too long (max %d characters)", maxSheetNameLength)
	}

	if i := strings.IndexAny(name, `:\/?*[]`); i >= 0 {
		return New(ErrCodeInvalidInput, "sheet name contains invalid character %q", name[i])
	}

	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return New(ErrCodeInvalidInput, "sheet name cannot start or end with an apostrophe")
	}

	return nil
}

// hexColorRegex matches #RGB and #RRGGBB colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ValidateColor checks a hex swatch color.
func ValidateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidSettings, "invalid color %q (want #RGB or #RRGGBB)", color)
	}
	return nil
}
