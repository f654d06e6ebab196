package feed

import (
	"regexp"
	"strings"
)

// markup extraction helpers for the upstream search feeds. Both upstreams
// return semi-structured XML with no schema guarantee, so extraction is
// best-effort pattern matching over raw fragments: CDATA-wrapped form is
// checked before plain inner content, tag matching is case-insensitive and
// the first occurrence wins. Extracted text is returned raw (undecoded,
// trimmed); entity decoding is a separate downstream step.

// ExtractTagText returns the inner text of the first occurrence of tag in
// the fragment, or "" if the tag is absent or empty.
func ExtractTagText(fragment, tag string) string {
	qt := regexp.QuoteMeta(tag)

	// CDATA-wrapped form takes precedence over plain content
	cdataRe := regexp.MustCompile(`(?is)<` + qt + `[^>]*><!\[CDATA\[(.*?)\]\]></` + qt + `>`)
	if m := cdataRe.FindStringSubmatch(fragment); m != nil {
		return strings.TrimSpace(m[1])
	}

	plainRe := regexp.MustCompile(`(?is)<` + qt + `[^>]*>(.*?)</` + qt + `>`)
	if m := plainRe.FindStringSubmatch(fragment); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractAttr returns the value of attr on the first occurrence of tag,
// self-closing or not, or "" if absent. Attribute order within the tag
// does not matter.
func ExtractAttr(fragment, tag, attr string) string {
	re := regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(tag) + `[^>]+` + regexp.QuoteMeta(attr) + `="([^"]+)"`)
	if m := re.FindStringSubmatch(fragment); m != nil {
		return m[1]
	}
	return ""
}

// entityReplacer handles the fixed entity set in a single left-to-right
// pass, so partially substituted output is never re-expanded
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
)

// DecodeEntities replaces the fixed set of HTML/XML entities the upstreams
// emit with their literal characters. No other entities are decoded.
func DecodeEntities(text string) string {
	return entityReplacer.Replace(text)
}
