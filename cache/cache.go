// Package cache provides the in-memory translation cache a run uses to
// submit each distinct text once. Nothing is persisted across runs.
package cache

import "github.com/ZaguanLabs/catalogtl"

// TranslationCache is an alias to the main package interface.
type TranslationCache = catalogtl.TranslationCache
