package cii

import "strings"

// escapeText makes a caller-supplied string safe for insertion into XML
// character data or attribute values. The ampersand must be replaced first;
// doing it after the angle brackets or quotes would double-escape their
// entities.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
