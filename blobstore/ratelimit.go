package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// RateLimitedStore wraps a BlobStore and throttles every request with a
// token bucket. Useful in front of remote stores with request quotas.
type RateLimitedStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// RateOption configures a RateLimitedStore.
type RateOption func(*RateLimitedStore)

// WithRate sets the sustained request rate and burst size.
func WithRate(r rate.Limit, burst int) RateOption {
	return func(s *RateLimitedStore) {
		s.limiter = rate.NewLimiter(r, burst)
	}
}

// NewRateLimitedStore wraps inner. Without WithRate requests are not throttled.
func NewRateLimitedStore(inner BlobStore, opts ...RateOption) *RateLimitedStore {
	s := &RateLimitedStore{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limiter returns the underlying limiter.
func (s *RateLimitedStore) Limiter() *rate.Limiter { return s.limiter }

func (s *RateLimitedStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &rateLimitedBlob{Blob: b, limiter: s.limiter}, nil
}

func (s *RateLimitedStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Create(ctx, name)
}

func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

func (s *RateLimitedStore) Delete(ctx context.Context, name string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.List(ctx, prefix)
}

// rateLimitedBlob charges one token per read request.
type rateLimitedBlob struct {
	Blob
	limiter *rate.Limiter
}

func (b *rateLimitedBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(ctx, p, off)
}

func (b *rateLimitedBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return b.Blob.ReadRange(ctx, off, length)
}
