package imagepipe

import (
	"context"
	"image/color"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"bookmirror/internal/catalog"
	"bookmirror/internal/logging"
	"bookmirror/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageServer(t *testing.T) *httptest.Server {
	png := testutil.PNG(4, 4, color.Black)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.png":
			w.WriteHeader(http.StatusNotFound)
		case "/empty.png":
			w.WriteHeader(http.StatusOK)
		case "/garbage.png":
			_, _ = w.Write([]byte("definitely not an image"))
		default:
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(png)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestPipeline(sink *testutil.MemorySink, concurrency int) *Pipeline {
	return New(sink, WebPTranscoder{Quality: 75}, Options{Concurrency: concurrency, UserAgent: "test"}, logging.Discard())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "b1/0.webp", Key("b1", 0, "webp"))
	assert.Equal(t, "b1/12.webp", Key("b1", 12, "webp"))
}

func TestPipeline_Store_AllImages(t *testing.T) {
	server := imageServer(t)
	sink := testutil.NewMemorySink()

	res := newTestPipeline(sink, 4).Store(context.Background(), "b1", []catalog.ImageRef{
		{Page: 0, URL: server.URL + "/cover.png"},
		{Page: 1, URL: server.URL + "/1.png"},
		{Page: 2, URL: server.URL + "/2.png"},
	})

	assert.Equal(t, Result{Stored: 3}, res)
	assert.Equal(t, []string{"b1/0.webp", "b1/1.webp", "b1/2.webp"}, sink.Keys())

	data, contentType, ok := sink.Get("b1/1.webp")
	require.True(t, ok)
	assert.Equal(t, "image/webp", contentType)
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestPipeline_Store_UnreachableImageIsSkipped(t *testing.T) {
	server := imageServer(t)
	sink := testutil.NewMemorySink()

	res := newTestPipeline(sink, 2).Store(context.Background(), "b1", []catalog.ImageRef{
		{Page: 0, URL: server.URL + "/cover.png"},
		{Page: 1, URL: server.URL + "/missing.png"},
		{Page: 2, URL: server.URL + "/2.png"},
	})

	assert.Equal(t, Result{Stored: 2, Failed: 1}, res)
	assert.Equal(t, []string{"b1/0.webp", "b1/2.webp"}, sink.Keys())
}

func TestPipeline_Store_NothingWrittenOnFailure(t *testing.T) {
	server := imageServer(t)
	sink := testutil.NewMemorySink()

	res := newTestPipeline(sink, 1).Store(context.Background(), "b1", []catalog.ImageRef{
		{Page: 0, URL: ""},
		{Page: 1, URL: server.URL + "/empty.png"},
		{Page: 2, URL: server.URL + "/garbage.png"},
		{Page: 3, URL: "http://127.0.0.1:1/unreachable.png"},
	})

	assert.Equal(t, Result{Failed: 4}, res)
	assert.Empty(t, sink.Keys())
}

func TestPipeline_Store_SinkFailureIsSkipped(t *testing.T) {
	server := imageServer(t)
	sink := testutil.NewMemorySink()
	sink.FailKeys["b1/1.webp"] = true

	res := newTestPipeline(sink, 2).Store(context.Background(), "b1", []catalog.ImageRef{
		{Page: 0, URL: server.URL + "/cover.png"},
		{Page: 1, URL: server.URL + "/1.png"},
	})

	assert.Equal(t, Result{Stored: 1, Failed: 1}, res)
	assert.Equal(t, []string{"b1/0.webp"}, sink.Keys())
}

func TestPipeline_Store_BoundedConcurrency(t *testing.T) {
	png := testutil.PNG(2, 2, color.White)
	var inFlight, peak int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		_, _ = w.Write(png)
	}))
	defer server.Close()

	images := make([]catalog.ImageRef, 10)
	for i := range images {
		images[i] = catalog.ImageRef{Page: i, URL: server.URL + "/img.png"}
	}

	res := newTestPipeline(testutil.NewMemorySink(), 3).Store(context.Background(), "b1", images)

	assert.Equal(t, 10, res.Stored)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}
