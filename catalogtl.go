// Package catalogtl translates product-catalog exports.
//
// Catalogtl reads a delimited catalog export (WooCommerce and similar),
// decides which columns hold human-readable content and sends only those
// cells to a translation service, in bounded batches with retry and markup
// preservation. Identifiers, taxonomies and numeric fields are never touched.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/ZaguanLabs/catalogtl"
//	    "github.com/ZaguanLabs/catalogtl/classify"
//	    "github.com/ZaguanLabs/catalogtl/dialect"
//	    "github.com/ZaguanLabs/catalogtl/provider"
//	    "github.com/ZaguanLabs/catalogtl/table"
//	)
//
//	func main() {
//	    raw, _ := os.ReadFile("products.csv")
//	    d, err := dialect.Sniff(raw, dialect.Options{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    t, err := table.Load(raw, d)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    lang, err := catalogtl.NormalizeLanguage("german")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p := provider.NewDeepLProvider(provider.DeepLConfig{
//	        APIKey: os.Getenv("DEEPL_API_KEY"),
//	    })
//
//	    tr := catalogtl.NewTranslator(lang, p)
//	    roles := classify.Classify(t.Keys(), classify.Options{})
//	    rows := table.Select(t, table.Filter{})
//	    if _, err := tr.Translate(context.Background(), t, rows, roles); err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = table.WriteFile("products.de.csv", t, table.WriteOptions{})
//	}
package catalogtl
