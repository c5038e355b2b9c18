// Package transcode converts individual lossless source files into target
// formats by inspecting their stream parameters, building the matching decode
// and encode pipeline, and verifying metadata on the result.
package transcode
