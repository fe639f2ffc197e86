package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/ZaguanLabs/catalogtl/dialect"
)

func utf8Dialect(delim rune) dialect.Dialect {
	return dialect.Dialect{Encoding: dialect.UTF8, Delimiter: delim}
}

func TestLoad(t *testing.T) {
	raw := []byte("ID;Name;Description\n1;Rose;\"Oil; 10ml\"\n2;Lily;\"Line one\nline two\"\n")

	tbl, err := Load(raw, utf8Dialect(';'))
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name", "Description"}, tbl.Keys())
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Oil; 10ml", tbl.Get(0, "Description"))
	assert.Equal(t, "Line one\nline two", tbl.Get(1, "Description"))
}

func TestLoad_SkipsRecordsBeforeHeader(t *testing.T) {
	raw := []byte("Export v2\nnote, with \"quoted\nnewline\"\nID,Name\n1,Rose\n")

	tbl, err := Load(raw, dialect.Dialect{Encoding: dialect.UTF8, Delimiter: ',', HeaderRow: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name"}, tbl.Keys())
	assert.Equal(t, "Rose", tbl.Get(0, "Name"))
}

func TestLoad_BOMAndLegacyEncodings(t *testing.T) {
	t.Run("utf-8-sig", func(t *testing.T) {
		raw := append([]byte{0xEF, 0xBB, 0xBF}, "ID,Name\n1,Růže\n"...)
		tbl, err := Load(raw, dialect.Dialect{Encoding: dialect.UTF8BOM, Delimiter: ','})
		require.NoError(t, err)
		assert.Equal(t, "ID", tbl.Keys()[0])
		assert.Equal(t, "Růže", tbl.Get(0, "Name"))
	})

	t.Run("windows-1250", func(t *testing.T) {
		raw, err := charmap.Windows1250.NewEncoder().Bytes([]byte("ID,Name\n1,Šampon\n"))
		require.NoError(t, err)
		tbl, err := Load(raw, dialect.Dialect{Encoding: dialect.Windows1250, Delimiter: ','})
		require.NoError(t, err)
		assert.Equal(t, "Šampon", tbl.Get(0, "Name"))
	})
}

func TestLoad_TrailingDelimiter(t *testing.T) {
	t.Run("data rows", func(t *testing.T) {
		tbl, err := Load([]byte("ID,Name\n1,Rose,\n2,Lily\n"), utf8Dialect(','))
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.Width())
		assert.Equal(t, "Rose", tbl.Get(0, "Name"))
	})

	t.Run("blank last header cell is a column", func(t *testing.T) {
		tbl, err := Load([]byte("ID,Name,\n1,Rose,\n2,Lily,x\n"), utf8Dialect(','))
		require.NoError(t, err)
		assert.Equal(t, []string{"ID", "Name", ""}, tbl.Keys())
		assert.Equal(t, "", tbl.Get(0, ""))
		assert.Equal(t, "x", tbl.Get(1, ""))
	})

	t.Run("non-empty extra field", func(t *testing.T) {
		_, err := Load([]byte("ID,Name\n1,Rose,x\n"), utf8Dialect(','))
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 2, pe.Line)
		assert.Equal(t, 2, pe.Expected)
		assert.Equal(t, 3, pe.Got)
		assert.Equal(t, "1,Rose,x", pe.Snippet)
	})
}

func TestLoad_PreambleWithUnbalancedQuote(t *testing.T) {
	raw := []byte("Shop export of 12\" bottles\nID,Name\n1,Rose\n2,Lily\n")

	d, err := dialect.Sniff(raw, dialect.Options{})
	require.NoError(t, err)

	tbl, err := Load(raw, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name"}, tbl.Keys())
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Lily", tbl.Get(1, "Name"))
}

func TestLoad_FieldCountMismatch(t *testing.T) {
	raw := []byte("Report\nID,Name,Price\n1,Rose,2\n2,Lily\n")

	_, err := Load(raw, dialect.Dialect{Encoding: dialect.UTF8, Delimiter: ',', HeaderRow: 1})
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 4, pe.Line)
	assert.Equal(t, 3, pe.Expected)
	assert.Equal(t, 2, pe.Got)
	assert.Contains(t, pe.Error(), "expected 3 fields, got 2")
}

func TestLoad_BareQuote(t *testing.T) {
	_, err := Load([]byte("ID,Name\n1,Ro\"se\n"), utf8Dialect(','))
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, `1,Ro"se`, pe.Snippet)
	assert.NotNil(t, pe.Unwrap())
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load([]byte(""), utf8Dialect(','))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
}

func TestLoad_HeaderOnly(t *testing.T) {
	tbl, err := Load([]byte("ID,Name\n"), utf8Dialect(','))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 2, tbl.Width())
}
