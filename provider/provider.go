// Package provider implements translation services.
package provider

import "github.com/ZaguanLabs/catalogtl"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = catalogtl.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = catalogtl.TranslateRequest

// TranslateResponse is an alias to the main package type.
type TranslateResponse = catalogtl.TranslateResponse
