package htmlquery_test

import (
	"testing"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/htmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_Detect(t *testing.T) {
	t.Parallel()

	t.Run("detects any data-ai attribute", func(t *testing.T) {
		t.Parallel()

		s := htmlquery.NewScanner()
		found, err := s.Detect(`<html><body><span data-ai-intent="nav">x</span></body></html>`)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("ignores data-importance alone", func(t *testing.T) {
		t.Parallel()

		s := htmlquery.NewScanner()
		found, err := s.Detect(`<div data-importance="critical"><h1>Plain</h1></div>`)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("plain page has no markers", func(t *testing.T) {
		t.Parallel()

		s := htmlquery.NewScanner()
		found, err := s.Detect(`<html><head><title>T</title></head><body><p data-role="x">y</p></body></html>`)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("malformed markup is recovered", func(t *testing.T) {
		t.Parallel()

		s := htmlquery.NewScanner()
		found, err := s.Detect(`<div><h1 data-ai-title="Broken">unclosed<p>text`)
		require.NoError(t, err)
		assert.True(t, found)
	})
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("returns annotated elements in document order", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body>
			<header><h1 data-ai-title="Header Title">H</h1></header>
			<div data-importance="critical"><p>x</p></div>
			<p data-ai-summary="S">summary</p>
		</body></html>`

		elements, err := htmlquery.NewScanner().Scan(doc)
		require.NoError(t, err)
		require.Len(t, elements, 3)
		assert.Equal(t, "h1", elements[0].Tag)
		assert.Equal(t, "div", elements[1].Tag)
		assert.Equal(t, "p", elements[2].Tag)
	})

	t.Run("resolves main and critical scope", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body>
			<main><div data-importance="critical"><h1 data-ai-title="Target">Text</h1></div></main>
			<aside><h2 data-ai-title="Side">Side</h2></aside>
		</body></html>`

		elements, err := htmlquery.NewScanner().Scan(doc)
		require.NoError(t, err)
		require.Len(t, elements, 3)

		critical := elements[0]
		assert.True(t, critical.InMain)
		assert.True(t, critical.InCritical)

		target := elements[1]
		assert.Equal(t, "Text", target.Text)
		assert.True(t, target.InMain)
		assert.True(t, target.InCritical)
		v, ok := target.Attr(waio.AttrTitle)
		assert.True(t, ok)
		assert.Equal(t, "Target", v)

		side := elements[2]
		assert.False(t, side.InMain)
		assert.False(t, side.InCritical)
	})

	t.Run("marker containers define main scope", func(t *testing.T) {
		t.Parallel()

		doc := `<div data-ai-entity-type="Main"><p data-ai-summary="">Inside</p></div>
			<div data-ai-intent="article"><span data-ai-title="T">t</span></div>`

		elements, err := htmlquery.NewScanner().Scan(doc)
		require.NoError(t, err)
		require.Len(t, elements, 4)
		for _, e := range elements {
			assert.True(t, e.InMain, e.Tag)
		}
	})

	t.Run("text content is trimmed and concatenated", func(t *testing.T) {
		t.Parallel()

		doc := `<article data-ai-content="">  Hello <b>World</b>  </article>`

		elements, err := htmlquery.NewScanner().Scan(doc)
		require.NoError(t, err)
		require.Len(t, elements, 1)
		assert.Equal(t, "Hello World", elements[0].Text)
	})

	t.Run("attributes keep source order", func(t *testing.T) {
		t.Parallel()

		doc := `<h1 class="x" data-ai-title="T" data-ai-entity-type="Headline">T</h1>`

		elements, err := htmlquery.NewScanner().Scan(doc)
		require.NoError(t, err)
		require.Len(t, elements, 1)
		assert.Equal(t, []waio.Attr{
			{Name: "class", Value: "x"},
			{Name: waio.AttrTitle, Value: "T"},
			{Name: waio.AttrEntityType, Value: "Headline"},
		}, elements[0].Attrs)
	})

	t.Run("no annotations returns nothing", func(t *testing.T) {
		t.Parallel()

		elements, err := htmlquery.NewScanner().Scan(`<p>plain</p>`)
		require.NoError(t, err)
		assert.Empty(t, elements)
	})
}

func TestTree(t *testing.T) {
	t.Parallel()

	t.Run("query returns matches in document order", func(t *testing.T) {
		t.Parallel()

		tree, err := htmlquery.Parse(`<ul><li>a</li><li>b</li></ul>`)
		require.NoError(t, err)

		nodes, err := tree.Query(`//li`)
		require.NoError(t, err)
		require.Len(t, nodes, 2)
		assert.Equal(t, "a", htmlquery.TextContent(nodes[0]))
		assert.Equal(t, "b", htmlquery.TextContent(nodes[1]))
	})

	t.Run("invalid query returns EINVALID", func(t *testing.T) {
		t.Parallel()

		tree, err := htmlquery.Parse(`<p>x</p>`)
		require.NoError(t, err)

		_, err = tree.Query(`//[`)
		require.Error(t, err)
		assert.Equal(t, waio.EINVALID, waio.ErrorCode(err))
	})

	t.Run("scope includes containers and descendants", func(t *testing.T) {
		t.Parallel()

		tree, err := htmlquery.Parse(`<main><section><p>in</p></section></main><p>out</p>`)
		require.NoError(t, err)

		scope, err := tree.Within(`//main`)
		require.NoError(t, err)

		ps, err := tree.Query(`//p`)
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.True(t, scope.Contains(ps[0]))
		assert.False(t, scope.Contains(ps[1]))

		mains, err := tree.Query(`//main`)
		require.NoError(t, err)
		assert.True(t, scope.Contains(mains[0]))
	})

	t.Run("main scope query covers every container kind", func(t *testing.T) {
		t.Parallel()

		tree, err := htmlquery.Parse(`<article><p>a</p></article>
<div data-ai-entity-type="Main"><p>b</p></div>
<div data-ai-intent="article"><p>c</p></div>
<aside><p>d</p></aside>`)
		require.NoError(t, err)

		scope, err := tree.Within(htmlquery.MainScopeQuery)
		require.NoError(t, err)

		ps, err := tree.Query(`//p`)
		require.NoError(t, err)
		require.Len(t, ps, 4)
		assert.True(t, scope.Contains(ps[0]))
		assert.True(t, scope.Contains(ps[1]))
		assert.True(t, scope.Contains(ps[2]))
		assert.False(t, scope.Contains(ps[3]))
	})

	t.Run("invalid scope expression is rejected", func(t *testing.T) {
		t.Parallel()

		tree, err := htmlquery.Parse(`<p>x</p>`)
		require.NoError(t, err)

		_, err = tree.Within(`//[`)
		require.Error(t, err)
		assert.Equal(t, waio.EINVALID, waio.ErrorCode(err))
	})
}
