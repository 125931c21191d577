package atom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeContent(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"&amp; stays", "&amp; stays"},
		{"&lt; is re-escaped", "&amp;lt; is re-escaped"},
		{"<tag> x ]]> y", "&lt;tag&gt; x ]]&gt; y"},
		{`"quotes" stay`, `"quotes" stay`},
		{"bell\x07 and nul\x00", "bell� and nul�"},
		{"tab\tnew\nline", "tab\tnew\nline"},
		{"héllo ✓", "héllo ✓"},
		{"bad \xff byte", "bad � byte"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EscapeContent(tt.in), tt.in)
	}
}

func TestEscapeAttribute(t *testing.T) {
	assert.Equal(t, "a &amp; &quot;b&quot; &lt;c&gt;", EscapeAttribute(`a & "b" <c>`))
	assert.Equal(t, "", attribute("x", ""))
	assert.Equal(t, ` x="&quot;"`, escapedAttribute("x", `"`))
	assert.Equal(t, ` a="1" c="3"`, attributes("a", "1", "b", "", "c", "3"))
}

func TestXMLWriter(t *testing.T) {
	var w xmlWriter
	w.open("parent", 0, attribute("k", "v"))
	w.element("empty", 1, "", "")
	w.element("full", 1, "text", "")
	w.escapedElement("skipped", 1, "")
	w.escapedElement("escaped", 2, "a<b")
	w.raw(1, "<raw/>")
	w.raw(1, "")
	w.close("parent", 0)

	expected := `<parent k="v">
    <empty/>
    <full>text</full>
        <escaped>a&lt;b</escaped>
    <raw/>
</parent>
`
	assert.Equal(t, expected, w.String())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "yesterday", FormatDate(RawDate("yesterday")))

	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "2003-12-13T16:30:02Z", FormatDate(At(time.Date(2003, 12, 13, 18, 30, 2, 0, loc))))
	assert.Equal(t, "0999-01-02T03:04:05Z", FormatDate(At(time.Date(999, 1, 2, 3, 4, 5, 999, time.UTC))))

	assert.True(t, Date{}.IsZero())
	assert.False(t, RawDate("x").IsZero())
}

func TestLatest(t *testing.T) {
	a := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.Add(time.Hour)
	assert.Equal(t, b, Latest(a, b, a))
	assert.True(t, Latest().IsZero())
}
