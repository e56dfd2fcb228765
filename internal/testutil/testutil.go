// Package testutil holds fakes shared by package tests.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sort"
	"sync"
)

// MemorySink is an in-memory blob.Sink.
type MemorySink struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	// FailKeys makes Put fail for the listed keys.
	FailKeys map[string]bool
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		objects:  make(map[string][]byte),
		types:    make(map[string]string),
		FailKeys: make(map[string]bool),
	}
}

func (s *MemorySink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailKeys[key] {
		return errors.New("memory sink: put rejected")
	}
	s.objects[key] = append([]byte(nil), data...)
	s.types[key] = contentType
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *MemorySink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *MemorySink) Get(key string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, s.types[key], ok
}

// PNG returns an encoded w x h PNG filled with c.
func PNG(w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
