package platform

// Package platform contains OS/platform integration: the default downloads
// directory, directory creation, safe file naming, and opening or revealing
// saved papers with the system's file manager or PDF viewer.
