// Command flacsmith transcodes lossless releases into distributable formats
// and builds the matching torrents.
package main
