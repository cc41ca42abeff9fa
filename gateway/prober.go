package gateway

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// LocalProber checks paths on the host filesystem
type LocalProber struct{}

func (LocalProber) CheckPathExists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
