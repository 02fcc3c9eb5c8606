package cli

import (
	"context"
	"fmt"

	"github.com/cardkeep/cardkeep/internal/netx"
)

// downloadFn is a test seam for netx.DownloadFromS3PresignedURL.
var downloadFn = netx.DownloadFromS3PresignedURL

func (a *App) export(ctx context.Context, args []string) {
	format := "csv"
	if len(args) > 0 {
		format = args[0]
	}

	url, err := a.exporter.Export(ctx, format)
	if err != nil {
		fmt.Fprintf(a.out, "Export failed: %v\n", err)
		return
	}

	path := "cards." + format
	if err := downloadFn(url, path); err != nil {
		fmt.Fprintf(a.out, "Download failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Exported contacts to %s\n", path)
}
