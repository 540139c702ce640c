package ports

import "context"

// DocumentOpener shows a rendered document to the user
type DocumentOpener interface {
	// Open opens the file at path with the system's default handler
	Open(ctx context.Context, path string) error
}
