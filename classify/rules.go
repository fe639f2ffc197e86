package classify

// Rule keys are matched against column names as contiguous word tokens,
// case-insensitively. "*" matches any single token.

// denyRules name columns that are never translated.
var denyRules = []string{
	"id", "sku", "slug",
	"price", "regular price", "sale price",
	"stock", "manage stock", "stock status", "allow backorders",
	"weight", "length", "width", "height",
	"download", "image", "images", "gallery",
	"virtual", "tax", "shipping",
	"menu order", "status", "catalog visibility", "date", "position",
	"parent", "upsells", "cross-sells",
	"external url", "button text",
	"reviews", "sold", "rating", "purchase note",
	"categories", "tags", "brand", "brands", "swatches attributes",
	"gtin", "ean", "upc", "isbn",
	"attribute * name",
}

// allowRules name columns that carry customer-facing text.
var allowRules = []string{
	"name", "title",
	"description", "short description",
	"excerpt", "content",
	"rank math title", "rank math description", "rank math focus keyword",
	"yoast", "og", "twitter", "seo",
	"attribute * value", "attribute * values",
}

// ingredientRules are the word for "ingredients" in the languages catalogs
// are commonly exported in.
var ingredientRules = []string{
	"ingredients", "ingredienti", "ingredientes", "ingrédients", "ingrediens",
	"ingrediente",
	"inhaltstoffe", "inhaltsstoffe",
	"zloženie", "zlozenie",
	"složení", "slozeni",
	"skład", "sklad",
	"összetevők", "osszetevok",
	"sastojci", "sastav", "sestavine",
	"состав", "склад",
}

// markupRules mark columns whose cells are sent with markup preservation.
var markupRules = []string{
	"description", "content", "excerpt",
}
