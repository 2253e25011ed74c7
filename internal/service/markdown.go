package service

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

var sanitizer = bluemonday.UGCPolicy()

// RenderHTML превращает markdown поста в безопасный HTML
func (p *postService) RenderHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("ошибка рендеринга markdown: %w", err)
	}

	return sanitizer.Sanitize(buf.String()), nil
}
