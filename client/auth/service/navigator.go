package service

import (
	"context"
	"fmt"
	"io"
)

// Navigator sends the user agent to an authorization URL.
type Navigator interface {
	Navigate(ctx context.Context, URL string) error
}

// NavigatorFunc adapts a function to a Navigator.
type NavigatorFunc func(ctx context.Context, URL string) error

func (f NavigatorFunc) Navigate(ctx context.Context, URL string) error { return f(ctx, URL) }

type writerNavigator struct {
	writer io.Writer
}

func (n *writerNavigator) Navigate(_ context.Context, URL string) error {
	_, err := fmt.Fprintf(n.writer, "To sign in, open the following URL in a browser:\n%s\n", URL)
	return err
}

// NewWriterNavigator returns a Navigator printing authorization URLs to w.
func NewWriterNavigator(w io.Writer) Navigator {
	return &writerNavigator{writer: w}
}
