package pagedarray

import "github.com/datatrails/go-datatrails-common/logger"

type Options struct {
	allocator Allocator
	log       logger.Logger
}

type Option func(*Options)

// WithAllocator accounts all node storage against a. Without it node storage
// is unbounded and unaccounted.
func WithAllocator(a Allocator) Option {
	return func(o *Options) {
		o.allocator = a
	}
}

// WithLogger enables debug logging of resizes.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}
