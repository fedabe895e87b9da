package model

// Package model defines domain data structures used across the app: the paper
// catalog, the user's selection, rendered card descriptors, and download tasks
// with their status enums. Structures are plain data; behaviour lives in the
// catalog, selection, render and download packages.
