package goquery_test

import (
	"testing"

	"github.com/fwojciec/waio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataReader_ReadMetadata(t *testing.T) {
	t.Parallel()

	t.Run("prefers og:title over other sources", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Tag Title</title>
<meta name="twitter:title" content="Twitter Title">
<meta property="og:title" content="OG Title">
</head>
<body><h1>Heading</h1></body>
</html>`

		meta, err := goquery.NewMetadataReader().ReadMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "OG Title", meta.Title)
	})

	t.Run("falls back to twitter:title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<title>Tag Title</title>
<meta name="twitter:title" content="Twitter Title">
</head></html>`

		meta, err := goquery.NewMetadataReader().ReadMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "Twitter Title", meta.Title)
	})

	t.Run("falls back to title tag then h1", func(t *testing.T) {
		t.Parallel()

		meta, err := goquery.NewMetadataReader().ReadMetadata(`<html><head><title>  Tag Title </title></head></html>`)
		require.NoError(t, err)
		assert.Equal(t, "Tag Title", meta.Title)

		meta, err = goquery.NewMetadataReader().ReadMetadata(`<html><body><h1>First</h1><h1>Second</h1></body></html>`)
		require.NoError(t, err)
		assert.Equal(t, "First", meta.Title)
	})

	t.Run("skips empty og:title content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="og:title" content="">
<title>Tag Title</title>
</head></html>`

		meta, err := goquery.NewMetadataReader().ReadMetadata(html)

		require.NoError(t, err)
		assert.Equal(t, "Tag Title", meta.Title)
	})

	t.Run("reads description from og then meta name", func(t *testing.T) {
		t.Parallel()

		meta, err := goquery.NewMetadataReader().ReadMetadata(`<html><head>
<meta name="description" content="Meta Desc">
<meta property="og:description" content="OG Desc">
</head></html>`)
		require.NoError(t, err)
		assert.Equal(t, "OG Desc", meta.Description)

		meta, err = goquery.NewMetadataReader().ReadMetadata(`<html><head>
<meta name="description" content="Meta Desc">
</head></html>`)
		require.NoError(t, err)
		assert.Equal(t, "Meta Desc", meta.Description)
	})

	t.Run("returns empty metadata for bare page", func(t *testing.T) {
		t.Parallel()

		meta, err := goquery.NewMetadataReader().ReadMetadata(`<p>text</p>`)

		require.NoError(t, err)
		assert.Empty(t, meta.Title)
		assert.Empty(t, meta.Description)
	})
}
