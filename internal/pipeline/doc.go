// Package pipeline builds and supervises the decode/resample/encode process
// chains used to transcode a single audio file.
//
// Unix shells report only the last command's status for a pipeline, which
// hides upstream faults: a decode error typically kills downstream stages via
// SIGPIPE while the final stage exits cleanly. The runner here therefore
// collects the exit status and full stderr of every stage, and Diagnose
// applies a root-cause policy over the complete result set.
package pipeline
