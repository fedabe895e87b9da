package download

// Package download implements the paper download pipeline. A Fetcher saves
// a single catalog reference (HTTP or local file) into a directory; the
// Service wraps it with task lifecycle, a concurrency limit, one retry, stop
// and restart, and progress propagation to the UI.
