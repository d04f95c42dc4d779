package gallery

import (
	"context"
	"fmt"

	"image_table_api/tools"
	"image_table_api/types"

	"golang.org/x/sync/errgroup"
)

// FetchImageRows lists the user's images and resolves every URL
// concurrently. Rows keep the listing order; any failure fails the fetch.
func FetchImageRows(ctx context.Context, bucket tools.ImageBucket, user *types.User) ([]types.ImageRow, error) {
	paths, err := bucket.ListObjects(ctx, tools.UserPrefix(user.UID))
	if err != nil {
		return nil, err
	}

	rows := make([]types.ImageRow, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, storagePath := range paths {
		g.Go(func() error {
			url, err := bucket.DownloadUrl(gctx, storagePath)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", storagePath, err)
			}

			rows[i] = tools.NewImageRow(user, tools.ObjectName(storagePath), url)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}
