package webapi

import (
	"bytes"
	"html"
)

// pageShell wraps rendered admin content into a minimal HTML document
// linking the packaged stylesheet. Body fragments come from our own
// renderers and are emitted as is.
func pageShell(title, stylesheetURL string, body []byte) []byte {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\">\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	buf.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	if stylesheetURL != "" {
		buf.WriteString("<link rel=\"stylesheet\" href=\"" + html.EscapeString(stylesheetURL) + "\">\n")
	}
	buf.WriteString("</head>\n<body>\n<main class=\"crudform-page\">\n")
	buf.Write(body)
	buf.WriteString("\n</main>\n</body>\n</html>\n")

	return buf.Bytes()
}
