// Package netx holds small networking helpers shared by client commands.
package netx

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// DownloadFromS3PresignedURL fetches the object behind a presigned GET URL
// and writes it to path.
func DownloadFromS3PresignedURL(url string, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return err
	}
	return nil
}
