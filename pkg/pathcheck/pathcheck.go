// Package pathcheck validates the URL path a page template is installed at.
package pathcheck

import (
	"path/filepath"
	"strings"

	"github.com/glorpus-work/kitctl/pkg/fsutil"
)

// Code identifies why a path was rejected.
type Code string

// Rejection codes, in the order they are checked.
const (
	CodeMissing         Code = "missing"
	CodeSingleSlash     Code = "singleSlash"
	CodeEndsWithSlash   Code = "endsWithSlash"
	CodeMultipleSlashes Code = "multipleSlashes"
	CodeInvalid         Code = "invalid"
	CodeExists          Code = "exists"
)

// InvalidCharacters may not appear anywhere in a path.
const InvalidCharacters = "!$&'()*+,;=:?#[]@.% "

var messages = map[Code]string{
	CodeExists:          "Path already exists",
	CodeMissing:         "Enter a path",
	CodeSingleSlash:     "Path must not be a single forward slash (/)",
	CodeEndsWithSlash:   "Path must not end in a forward slash (/)",
	CodeMultipleSlashes: "must not include a slash followed by another slash (//)",
	CodeInvalid:         "Path must not include !$&'()*+,;=:?#[]@.% or space",
}

// Message returns the text shown to the user for c.
func (c Code) Message() string {
	return messages[c]
}

// Result is the outcome of Check. Code is empty when the path is usable.
type Result struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Normalize prefixes a missing leading slash. An empty path stays empty.
func Normalize(raw string) string {
	if raw != "" && !strings.HasPrefix(raw, "/") {
		return "/" + raw
	}
	return raw
}

// Check returns the first rule path breaks. exists reports whether a view is
// already installed at the path and may be nil.
func Check(path string, exists func(path string) bool) Result {
	res := Result{Path: path}
	switch {
	case path == "":
		res.Code = CodeMissing
	case path == "/":
		res.Code = CodeSingleSlash
	case strings.HasSuffix(path, "/"):
		res.Code = CodeEndsWithSlash
	case strings.Contains(path, "//"):
		res.Code = CodeMultipleSlashes
	case strings.ContainsAny(path, InvalidCharacters):
		res.Code = CodeInvalid
	case exists != nil && exists(path):
		res.Code = CodeExists
	default:
		res.Valid = true
		return res
	}
	res.Message = res.Code.Message()
	return res
}

// ViewExists returns an exists func for Check that looks for
// <viewsDir><path>.html.
func ViewExists(viewsDir string) func(string) bool {
	return func(path string) bool {
		return fsutil.Exists(filepath.Join(viewsDir, filepath.FromSlash(path)+".html"))
	}
}
