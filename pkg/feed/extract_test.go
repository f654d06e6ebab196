package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTagText(t *testing.T) {
	t.Run("plain content", func(t *testing.T) {
		got := ExtractTagText(`<item><title>Hello World</title></item>`, "title")
		assert.Equal(t, "Hello World", got)
	})

	t.Run("cdata takes precedence and stays raw", func(t *testing.T) {
		got := ExtractTagText(`<title><![CDATA[A & B]]></title>`, "title")
		assert.Equal(t, "A & B", got, "CDATA content must come back undecoded")
	})

	t.Run("cdata preferred over plain occurrence", func(t *testing.T) {
		fragment := `<title>plain</title><title><![CDATA[wrapped]]></title>`
		got := ExtractTagText(fragment, "title")
		assert.Equal(t, "wrapped", got)
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		fragment := `<link>https://first.example.com</link><link>https://second.example.com</link>`
		got := ExtractTagText(fragment, "link")
		assert.Equal(t, "https://first.example.com", got)
	})

	t.Run("case insensitive tag match", func(t *testing.T) {
		got := ExtractTagText(`<TITLE>Shouty</TITLE>`, "title")
		assert.Equal(t, "Shouty", got)
	})

	t.Run("multiline content", func(t *testing.T) {
		got := ExtractTagText("<description>line one\nline two</description>", "description")
		assert.Equal(t, "line one\nline two", got)
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		got := ExtractTagText("<title>\n  padded  \n</title>", "title")
		assert.Equal(t, "padded", got)
	})

	t.Run("tag with attributes", func(t *testing.T) {
		got := ExtractTagText(`<title type="text">Attributed</title>`, "title")
		assert.Equal(t, "Attributed", got)
	})

	t.Run("absent tag", func(t *testing.T) {
		got := ExtractTagText(`<item><title>x</title></item>`, "link")
		assert.Empty(t, got)
	})

	t.Run("namespaced tag name", func(t *testing.T) {
		got := ExtractTagText(`<media:title>Pic</media:title>`, "media:title")
		assert.Equal(t, "Pic", got)
	})
}

func TestExtractAttr(t *testing.T) {
	t.Run("self-closing tag", func(t *testing.T) {
		got := ExtractAttr(`<enclosure url="https://example.com/a.jpg" type="image/jpeg"/>`, "enclosure", "url")
		assert.Equal(t, "https://example.com/a.jpg", got)
	})

	t.Run("attribute order irrelevant", func(t *testing.T) {
		got := ExtractAttr(`<media:content type="image/png" url="https://example.com/b.png">`, "media:content", "url")
		assert.Equal(t, "https://example.com/b.png", got)
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		fragment := `<link href="https://one.example.com"/><link href="https://two.example.com"/>`
		got := ExtractAttr(fragment, "link", "href")
		assert.Equal(t, "https://one.example.com", got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := ExtractAttr(`<LINK HREF="https://example.com/x">`, "link", "href")
		assert.Equal(t, "https://example.com/x", got)
	})

	t.Run("absent attribute", func(t *testing.T) {
		got := ExtractAttr(`<link rel="alternate">`, "link", "href")
		assert.Empty(t, got)
	})

	t.Run("absent tag", func(t *testing.T) {
		got := ExtractAttr(`<item></item>`, "enclosure", "url")
		assert.Empty(t, got)
	})
}

func TestDecodeEntities(t *testing.T) {
	t.Run("fixed entity set", func(t *testing.T) {
		got := DecodeEntities("&amp;&lt;&gt;&quot;&#39;&apos;")
		assert.Equal(t, `&<>"''`, got)
	})

	t.Run("single pass, no re-expansion", func(t *testing.T) {
		// &amp;lt; decodes the &amp; only; the produced &lt; must survive
		got := DecodeEntities("&amp;lt;")
		assert.Equal(t, "&lt;", got)
	})

	t.Run("other entities untouched", func(t *testing.T) {
		got := DecodeEntities("&nbsp;&hellip;")
		assert.Equal(t, "&nbsp;&hellip;", got)
	})

	t.Run("mixed text", func(t *testing.T) {
		got := DecodeEntities("Johnson &amp; Johnson&#39;s &quot;deal&quot;")
		assert.Equal(t, `Johnson & Johnson's "deal"`, got)
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Empty(t, DecodeEntities(""))
	})
}
