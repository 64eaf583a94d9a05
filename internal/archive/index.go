// This file is part of the CosmoScout VR ecosystem.
//
// SPDX-FileCopyrightText: German Aerospace Center (DLR) <cosmoscout@dlr.de>
// SPDX-License-Identifier: MIT

package archive

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// chunkExtension marks the gzipped catalogue chunks on the index page; all
// other links (parent directory, checksums, readme) are ignored.
const chunkExtension = ".gz"

// parseIndex extracts the chunk links from a directory index page. Links are
// resolved against the index URL, deduplicated, and returned in document
// order, which keeps the chunk sequence stable across runs.
func parseIndex(indexURL string, r io.Reader) ([]Chunk, error) {
	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL %q: %w", indexURL, err)
	}
	// Directory indexes resolve relative hrefs against the directory itself.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	var chunks []Chunk
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if chunk, ok := resolveChunk(base, attr.Val); ok && !seen[chunk.URL] {
					seen[chunk.URL] = true
					chunks = append(chunks, chunk)
				}
				break
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return chunks, nil
}

// resolveChunk turns one href into an absolute chunk reference, rejecting
// anything that is not a compressed chunk file.
func resolveChunk(base *url.URL, href string) (Chunk, bool) {
	if !strings.HasSuffix(href, chunkExtension) {
		return Chunk{}, false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return Chunk{}, false
	}
	resolved := base.ResolveReference(ref)

	name := path.Base(resolved.Path)
	if name == "." || name == "/" {
		return Chunk{}, false
	}

	return Chunk{Name: name, URL: resolved.String()}, true
}
