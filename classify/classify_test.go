package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wooColumns = []string{
	"ID", "Type", "SKU", "GTIN, UPC, EAN, or ISBN", "Name", "Published",
	"Is featured?", "Visibility in catalog", "Short description", "Description",
	"Date sale price starts", "Tax status", "In stock?", "Stock", "Weight (kg)",
	"Allow customer reviews?", "Purchase note", "Sale price", "Regular price",
	"Categories", "Tags", "Shipping class", "Images", "Download limit",
	"Parent", "Upsells", "Cross-sells", "External URL", "Button text", "Position",
	"Brands", "Attribute 1 name", "Attribute 1 value(s)", "Attribute 1 visible",
	"Meta: rank_math_title", "Meta: rank_math_description", "Meta: _yoast_wpseo_metadesc",
	"Ingredients", "Složení", "Состав",
}

func TestClassify_WooCommerceExport(t *testing.T) {
	res := Classify(wooColumns, Options{})

	assert.Equal(t, []string{
		"Name", "Short description", "Description",
		"Attribute 1 value(s)",
		"Meta: rank_math_title", "Meta: rank_math_description", "Meta: _yoast_wpseo_metadesc",
		"Ingredients", "Složení", "Состав",
	}, res.Translatable())

	for _, col := range []string{"ID", "SKU", "GTIN, UPC, EAN, or ISBN", "Categories", "Tags",
		"Regular price", "Attribute 1 name", "Images", "Brands", "Cross-sells", "Type"} {
		assert.Equal(t, PassThrough, res.Role(col), col)
	}
	assert.Len(t, res.Decisions, len(wooColumns))
}

func TestClassify_DenyBeatsAllow(t *testing.T) {
	res := Classify([]string{"Image title", "Attribute 2 name", "Brand description"}, Options{})

	for _, d := range res.Decisions {
		assert.Equal(t, PassThrough, d.Role, d.Column)
		assert.Equal(t, ReasonDeny, d.Reason, d.Column)
	}
}

func TestClassify_TokenMatching(t *testing.T) {
	tests := []struct {
		column string
		role   Role
	}{
		{"name", Translatable},
		{"PRODUCT NAME", Translatable},
		{"Username", PassThrough},   // "name" is not a whole token
		{"Identifier", PassThrough}, // nor is "id"
		{"Product ID", PassThrough},
		{"Width", PassThrough},
		{"Subtitle", PassThrough},
		{"attribute_3_value", Translatable},
		{"Meta: og_title", Translatable},
		{"Meta: custom_color", PassThrough},
	}

	names := make([]string, len(tests))
	for i, tt := range tests {
		names[i] = tt.column
	}
	res := Classify(names, Options{})

	for _, tt := range tests {
		assert.Equal(t, tt.role, res.Role(tt.column), tt.column)
	}
}

func TestClassify_Ingredients(t *testing.T) {
	cols := []string{"Name", "Ingredienti", "Összetevők", "Zloženie", "Skład (INCI)"}

	included := Classify(cols, Options{})
	for _, col := range cols[1:] {
		assert.Equal(t, Translatable, included.Role(col), col)
	}

	excluded := Classify(cols, Options{ExcludeIngredients: true})
	assert.Equal(t, Translatable, excluded.Role("Name"))
	for _, col := range cols[1:] {
		assert.Equal(t, PassThrough, excluded.Role(col), col)
	}
	assert.Equal(t, ReasonExcluded, excluded.Decisions[1].Reason)
}

func TestClassify_OnlyOverridesRules(t *testing.T) {
	cols := []string{"SKU", "Name", "Description", "Custom notes"}

	res := Classify(cols, Options{Only: []string{"custom NOTES", " sku "}})

	assert.Equal(t, []string{"SKU", "Custom notes"}, res.Translatable())
	assert.Equal(t, PassThrough, res.Role("Name"))
	assert.Equal(t, PassThrough, res.Role("Description"))
}

func TestClassify_MarkupHint(t *testing.T) {
	res := Classify([]string{"Description", "Short description", "Post excerpt", "Content", "Name"}, Options{})

	assert.True(t, res.Markup("Description"))
	assert.True(t, res.Markup("Short description"))
	assert.True(t, res.Markup("Post excerpt"))
	assert.True(t, res.Markup("Content"))
	assert.False(t, res.Markup("Name"))
	assert.False(t, res.Markup("Missing"))
}

func TestClassify_UnknownDefaultsToPassThrough(t *testing.T) {
	res := Classify([]string{"Colour", "Notes"}, Options{})

	require.Len(t, res.Decisions, 2)
	for _, d := range res.Decisions {
		assert.Equal(t, PassThrough, d.Role)
		assert.Equal(t, ReasonDefault, d.Reason)
	}
	assert.Equal(t, PassThrough, res.Role("not a column"))
}

func TestClassify_Idempotent(t *testing.T) {
	opts := Options{ExcludeIngredients: true}
	first := Classify(wooColumns, opts)
	second := Classify(wooColumns, opts)

	assert.Equal(t, first.Decisions, second.Decisions)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "translatable", Translatable.String())
	assert.Equal(t, "pass-through", PassThrough.String())
}
