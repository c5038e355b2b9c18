package textutil

import "strings"

// fileNameReplacer replaces characters that are unsafe in file basenames.
// Path separators and colons are handled separately by SanitizeDirName since
// basenames derived from existing files cannot contain them.
var fileNameReplacer = strings.NewReplacer(
	"?", "_",
	"<", "_",
	">", "_",
	"\\", "_",
	"*", "_",
	"|", "_",
	"\"", "_",
)

var dirNameReplacer = strings.NewReplacer(
	"?", "_",
	"<", "_",
	">", "_",
	"\\", "_",
	"*", "_",
	"|", "_",
	"\"", "_",
	":", "_",
	"/", "_",
)

// SanitizeFileName replaces filesystem-unsafe characters in a file basename
// with underscores.
func SanitizeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}

// SanitizeDirName replaces filesystem-unsafe characters in a computed
// directory name with underscores. Unlike SanitizeFileName it also replaces
// colons and slashes, which can appear in release titles.
func SanitizeDirName(name string) string {
	return dirNameReplacer.Replace(name)
}
