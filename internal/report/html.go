package report

import (
	"fmt"
	"html"
	"io"
	"path/filepath"
)

// WriteFigureIndex writes a plain HTML page listing the given figure
// files. The page is meant to sit next to the figures, so images are
// referenced by base name.
//
// Design decision: The page is assembled with fmt rather than
// html/template because it is a fixed list of images with no
// user-controlled structure. Names are still HTML-escaped.
func WriteFigureIndex(w io.Writer, title string, figures []string) error {
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n<h1>%s</h1>\n", html.EscapeString(title), html.EscapeString(title)); err != nil {
		return err
	}

	for _, path := range figures {
		name := filepath.Base(path)
		if _, err := fmt.Fprintf(w, "<figure>\n<img src=%q alt=%q>\n<figcaption>%s</figcaption>\n</figure>\n", name, name, html.EscapeString(name)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "</body>\n</html>\n")
	return err
}
