// Package processor splits markup into translatable text nodes and puts
// translations back.
package processor

import "github.com/ZaguanLabs/catalogtl"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = catalogtl.ContentProcessor

// TextNode is an alias to the main package type.
type TextNode = catalogtl.TextNode
