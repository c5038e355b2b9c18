// Package audio inspects lossless source files and decides whether a release
// needs resampling before encoding.
package audio
