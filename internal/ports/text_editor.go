package ports

import "context"

// TextEditor lets the user edit text in an external program
type TextEditor interface {
	// Edit returns the content saved by the user. name labels the temp file.
	Edit(ctx context.Context, name, initial string) (string, error)
}
