// Copyright 2025 The MeteorMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils provides utility functions for working with HTML.
package htmlutils

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Node2string collects the trimmed text of n and its descendants, joining
// non-empty fragments with a single space.
func Node2string(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		tmp := strings.Join(strings.Fields(n.Data), " ")
		if len(tmp) > 0 {
			if sb.Len() != 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(tmp)
		}

		return
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		Node2string(child, sb)
	}
}

// RawText returns the untouched text of the direct text children of n. This is
// what a browser exposes as textContent for <script> and <style> elements.
func RawText(n *html.Node) string {
	var sb strings.Builder

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}

	return sb.String()
}

// AsReader decodes r into UTF-8, honouring any charset declared by the document.
func AsReader(r io.Reader) (io.Reader, error) {
	rr, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	return rr, nil
}

// AsNode parses an io.Reader as an HTML node.
func AsNode(r io.Reader) (*html.Node, error) {
	rr, err := AsReader(r)
	if err != nil {
		return nil, err
	}

	n, err := html.Parse(rr)
	if nil != err {
		return nil, fmt.Errorf("parsing body as HTML: %w", err)
	}

	return n, nil
}

// Attr returns the value of the named attribute, or "" if absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}

	return ""
}

// FindAll returns, in document order, every element below n for which match
// returns true.
func FindAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node

	var walk func(*html.Node)

	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && match(c) {
			found = append(found, c)
		}

		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return found
}

// ElementByID returns the first element whose id attribute equals id.
func ElementByID(n *html.Node, id string) *html.Node {
	found := FindAll(n, func(c *html.Node) bool {
		return Attr(c, "id") == id
	})
	if len(found) == 0 {
		return nil
	}

	return found[0]
}

// ElementsByTag returns every element with the given tag name.
func ElementsByTag(n *html.Node, tag string) []*html.Node {
	return FindAll(n, func(c *html.Node) bool {
		return strings.EqualFold(c.Data, tag)
	})
}
