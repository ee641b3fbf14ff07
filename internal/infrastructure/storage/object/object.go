package object

import (
	"context"
)

// Store holds uploaded evidence photos and hands back the URL clients will
// render. Object names are caller-generated and never reused.
type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}
