// Package services defines the error taxonomy shared across the transcode
// engine and the context annotations consumed by structured logging.
package services
