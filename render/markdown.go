// SPDX-License-Identifier: GPL-3.0-only

// Package render turns the lightweight markup stored in job details into
// sanitized HTML for API responses.
package render

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// ToHTML renders source as HTML. Raw HTML in source is dropped by the
// sanitizer. If rendering fails the escaped source is returned.
func (m *Markdown) ToHTML(source string) string {
	if strings.TrimSpace(source) == "" {
		return source
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return m.policy.Sanitize(source)
	}
	return strings.TrimSpace(m.policy.Sanitize(buf.String()))
}
