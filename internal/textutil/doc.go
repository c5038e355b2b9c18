// Package textutil provides filename and directory-name sanitization shared
// by the transcoder and release packager.
package textutil
