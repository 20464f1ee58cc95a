package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ziadkadry99/marsdash/internal/nasa"
)

// PhotoQuery selects the photos of one rover on one sol.
type PhotoQuery struct {
	Rover string
	Sol   int
}

// PhotoFetcher loads photos through the proxy endpoint into a Store.
type PhotoFetcher struct {
	client  *http.Client
	baseURL string
	store   *Store
}

// NewPhotoFetcher creates a PhotoFetcher that calls the proxy at baseURL.
func NewPhotoFetcher(client *http.Client, baseURL string, store *Store) *PhotoFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &PhotoFetcher{client: client, baseURL: baseURL, store: store}
}

// Fetch calls the proxy and replaces the store's photos with the decoded
// list. Its only useful effect is the store update; the returned markup is
// always empty on success.
func (f *PhotoFetcher) Fetch(ctx context.Context, q PhotoQuery) (string, error) {
	u := fmt.Sprintf("%s/rovers/%s?sol=%s", f.baseURL, url.PathEscape(q.Rover), strconv.Itoa(q.Sol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("creating proxy request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy request failed: %w", err)
	}
	defer resp.Body.Close()

	var data nasa.PhotosResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decoding proxy response: %w", err)
	}

	f.store.Update(WithPhotos(data.Photos))
	return "", nil
}
