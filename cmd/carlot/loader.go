package main

import (
	"context"
	"io"
	"strings"

	"github.com/fwojciec/carlot"
)

// sourceLoader sends http(s) sources to web and everything else to files.
type sourceLoader struct {
	files carlot.PageLoader
	web   carlot.PageLoader
}

func (l *sourceLoader) Load(ctx context.Context, source string) (*carlot.Page, error) {
	if isURL(source) {
		return l.web.Load(ctx, source)
	}
	return l.files.Load(ctx, source)
}

// Close releases the web loader if it holds resources, such as a browser.
func (l *sourceLoader) Close() error {
	if c, ok := l.web.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
