// Package release assembles distributable release directories: it derives
// the destination directory name from release metadata, transcodes every
// lossless file into the target format, carries ancillary files along, and
// rolls the whole tree back on failure.
package release
