package async

import (
	"context"
	"fmt"
	"image"
	"net/http"

	// Channel icons arrive in whatever format the provider hosts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultIconBox is the bounding square, in pixels, that fetched icons
// are scaled into. It matches the icon footprint of a channel row.
const DefaultIconBox = 40

// Some providers refuse icon requests that do not look like a browser.
const (
	fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	fetchAccept    = "image/webp,image/apng,image/*,*/*;q=0.8"
)

// FetchFunc performs the blocking fetch and decode of one resource.
// The context carries the per-task deadline.
type FetchFunc func(ctx context.Context, id string) (image.Image, error)

// NewImageFetcher returns a FetchFunc that downloads the resource at
// id over HTTP, decodes it, and scales it into a box-sized bounding
// square. A nil client uses http.DefaultClient.
func NewImageFetcher(client *http.Client, box int) FetchFunc {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, id string) (image.Image, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, id, nil)
		if err != nil {
			return nil, fmt.Errorf("build icon request: %w", err)
		}
		req.Header.Set("User-Agent", fetchUserAgent)
		req.Header.Set("Accept", fetchAccept)
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch icon: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch icon: unexpected status %s", resp.Status)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decode icon: %w", err)
		}
		return Thumbnail(img, box), nil
	}
}

// Thumbnail scales src to fit within a box-sized square, preserving
// aspect ratio. Images already inside the box are returned as-is.
func Thumbnail(src image.Image, box int) image.Image {
	if box <= 0 {
		box = DefaultIconBox
	}
	return resize.Thumbnail(uint(box), uint(box), src, resize.Lanczos3)
}
