// SPDX-License-Identifier: GPL-3.0-only

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML(t *testing.T) {
	m := NewMarkdown()

	out := m.ToHTML("**Markdown Bold** and *Italic*")
	assert.Contains(t, out, "<strong>Markdown Bold</strong>")
	assert.Contains(t, out, "<em>Italic</em>")

	list := m.ToHTML("Requirements:\n\n- Go\n- SQL\n")
	assert.Contains(t, list, "<li>Go</li>")
	assert.Contains(t, list, "<ul>")
}

func TestToHTML_StripsScripts(t *testing.T) {
	out := NewMarkdown().ToHTML("Hello <script>alert(1)</script> **world**")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<strong>world</strong>")
}

func TestToHTML_Empty(t *testing.T) {
	assert.Equal(t, "", NewMarkdown().ToHTML(""))
}
