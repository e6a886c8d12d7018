package ports

import "context"

// Publisher uploads exported files to a remote destination
type Publisher interface {
	Publish(ctx context.Context, localPath, remoteName string) error
}
