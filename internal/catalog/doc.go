package catalog

// Package catalog loads the paper catalog from a JSON or YAML document served
// over HTTP or read from disk, falling back to a built-in catalog when the
// source is unavailable. It also resolves and opens the paper and preview
// references listed in the catalog relative to the catalog's location.
