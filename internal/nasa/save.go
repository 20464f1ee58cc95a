package nasa

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
)

// Progress receives download progress. progress.Reporter satisfies it.
type Progress interface {
	Start(total int)
	Saved(name string, size int64)
	Done(err error)
}

// SavePhotos downloads every photo into dir and returns the written paths.
// Files are named after the photo id and the extension of the image URL.
// It stops at the first failure.
func (c *Client) SavePhotos(ctx context.Context, photos []Photo, dir string, p Progress) (paths []string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	p.Start(len(photos))
	defer func() { p.Done(err) }()

	paths = make([]string, 0, len(photos))
	for i, photo := range photos {
		name := photoFileName(photo, i)
		dest := filepath.Join(dir, name)
		n, err := c.saveOne(ctx, photo.ImgSrc, dest)
		if err != nil {
			return paths, fmt.Errorf("photo %s: %w", name, err)
		}
		paths = append(paths, dest)
		p.Saved(name, n)
	}
	return paths, nil
}

func (c *Client) saveOne(ctx context.Context, src, dest string) (int64, error) {
	f, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	n, err := c.Download(ctx, src, f)
	if err != nil {
		f.Close()
		os.Remove(dest)
		return 0, err
	}
	return n, f.Close()
}

func photoFileName(p Photo, index int) string {
	id := strconv.Itoa(p.ID)
	if p.ID == 0 {
		id = "photo-" + strconv.Itoa(index+1)
	}
	ext := ".jpg"
	if u, err := url.Parse(p.ImgSrc); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return id + ext
}
