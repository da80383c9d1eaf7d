package service

import (
	"time"

	"github.com/phrazzld/tango-api/internal/domain/drill"
)

// Option customizes a service at construction time.
type Option func(*options)

type options struct {
	now     func() time.Time
	shuffle drill.ShuffleFunc
}

func defaultOptions() options {
	return options{now: time.Now, shuffle: drill.DefaultShuffle}
}

// WithClock sets the clock used for "now". Tests use it to pin time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithShuffle sets the permutation used for random selection.
func WithShuffle(shuffle drill.ShuffleFunc) Option {
	return func(o *options) {
		if shuffle != nil {
			o.shuffle = shuffle
		}
	}
}
