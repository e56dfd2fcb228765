// Package imagepipe fetches book images, transcodes them and stores them in
// the blob sink under {bookId}/{page}.{ext}.
package imagepipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"bookmirror/internal/catalog"
	"bookmirror/internal/platform/blob"

	"golang.org/x/sync/errgroup"
)

const maxImageBytes = 32 << 20

type Options struct {
	Concurrency int
	UserAgent   string
	Timeout     time.Duration
}

// Pipeline stores the images of one book at a time. A failed image is
// logged and skipped; it never fails the book.
type Pipeline struct {
	httpClient  *http.Client
	sink        blob.Sink
	transcoder  Transcoder
	concurrency int
	userAgent   string
	logger      *slog.Logger
}

// Result counts the outcome of one Store call.
type Result struct {
	Stored int
	Failed int
}

func New(sink blob.Sink, transcoder Transcoder, opts Options, logger *slog.Logger) *Pipeline {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Pipeline{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		sink:        sink,
		transcoder:  transcoder,
		concurrency: opts.Concurrency,
		userAgent:   opts.UserAgent,
		logger:      logger,
	}
}

// Key is the blob key of a page image.
func Key(bookID string, page int, ext string) string {
	return fmt.Sprintf("%s/%d.%s", bookID, page, ext)
}

// Store processes images with bounded concurrency and returns when all are done.
func (p *Pipeline) Store(ctx context.Context, bookID string, images []catalog.ImageRef) Result {
	var stored, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for _, img := range images {
		g.Go(func() error {
			key := Key(bookID, img.Page, p.transcoder.Extension())
			if err := p.storeOne(ctx, key, img.URL); err != nil {
				failed.Add(1)
				p.logger.Warn("skipping image", "book_id", bookID, "page", img.Page, "url", img.URL, "error", err)
				return nil
			}
			stored.Add(1)
			p.logger.Debug("stored image", "book_id", bookID, "page", img.Page, "key", key)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Stored: int(stored.Load()), Failed: int(failed.Load())}
	p.logger.Info("done storing images", "book_id", bookID, "stored", res.Stored, "failed", res.Failed)
	return res
}

// storeOne writes nothing unless fetch and transcode both succeed.
func (p *Pipeline) storeOne(ctx context.Context, key, url string) error {
	if url == "" {
		return errors.New("empty image url")
	}
	src, err := p.fetch(ctx, url)
	if err != nil {
		return err
	}
	out, err := p.transcoder.Transcode(src)
	if err != nil {
		return err
	}
	return p.sink.Put(ctx, key, out, p.transcoder.ContentType())
}

func (p *Pipeline) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(body) > maxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}
	return body, nil
}
