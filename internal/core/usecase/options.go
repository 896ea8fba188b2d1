package usecase

import (
	"time"

	"github.com/google/uuid"
)

type serviceOptions struct {
	nowFunc func() time.Time
	idFunc  func() string
}

// ServiceOptArgs are the optional arguments for building the services of this package.
type ServiceOptArgs = func(*serviceOptions)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) ServiceOptArgs {
	return func(o *serviceOptions) {
		o.nowFunc = nowFunc
	}
}

// WithIDFunc can be used to override the identifier generator. Useful for testing.
func WithIDFunc(idFunc func() string) ServiceOptArgs {
	return func(o *serviceOptions) {
		o.idFunc = idFunc
	}
}

func newServiceOptions(optArgs []ServiceOptArgs) serviceOptions {
	opts := serviceOptions{
		nowFunc: func() time.Time { return time.Now().UTC() },
		idFunc:  func() string { return uuid.NewString() },
	}
	for _, opt := range optArgs {
		opt(&opts)
	}
	return opts
}
