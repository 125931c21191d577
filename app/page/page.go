// Package page renders the HTML listing of the data directory.
package page

import (
	"bytes"
	"html"
	"time"
)

// TimeLayout formats listing times in the configured local timezone
const TimeLayout = "2006-01-02 15:04:05 MST"

// Details are the pieces of the page boilerplate; every field but Title is
// inserted as markup.
type Details struct {
	Title  string
	Head   string
	Top    string
	Body   string
	Bottom string
}

type Alternate struct {
	Href  string
	Title string
	Type  string
}

type Item struct {
	Href  string
	Label string
	Time  time.Time
}

// Boilerplate wraps the details in an XHTML document.
func Boilerplate(d Details) string {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n")
	buf.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml">`)
	buf.WriteString("\n<head>\n")
	buf.WriteString("    <meta charset=\"utf-8\" />\n")
	buf.WriteString("    <title>" + html.EscapeString(d.Title) + "</title>\n")
	buf.WriteString(d.Head)
	buf.WriteString("</head>\n<body>\n")
	buf.WriteString(d.Top)
	buf.WriteString(d.Body)
	buf.WriteString(d.Bottom)
	buf.WriteString("</body>\n</html>")

	return buf.String()
}

// Listing renders a titled list of links with alternate feed links in the
// head.
func Listing(title, heading string, alternates []Alternate, items []Item) string {
	var head bytes.Buffer
	for _, alt := range alternates {
		head.WriteString(`<link href="` + html.EscapeString(alt.Href) + `" rel="alternate" type="` + html.EscapeString(alt.Type) + `"`)
		if alt.Title != "" {
			head.WriteString(` title="` + html.EscapeString(alt.Title) + `"`)
		}
		head.WriteString(" />\n")
	}

	var body bytes.Buffer
	for _, item := range items {
		writeItem(&body, item)
	}

	return Boilerplate(Details{
		Title:  title,
		Head:   head.String(),
		Top:    "<h1>" + html.EscapeString(heading) + "</h1>\n<ul>\n",
		Body:   body.String(),
		Bottom: "</ul>\n",
	})
}

func writeItem(buf *bytes.Buffer, item Item) {
	buf.WriteString(`<li><a href="` + html.EscapeString(item.Href) + `">`)
	buf.WriteString(html.EscapeString(item.Label))
	buf.WriteString("</a> (" + item.Time.Local().Format(TimeLayout) + ")</li>\n")
}
