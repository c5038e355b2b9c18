// Package logging configures slog for the transcode engine: a human-readable
// console handler, a JSON handler, typed attribute helpers, and context-derived
// fields (job id, stage).
package logging
