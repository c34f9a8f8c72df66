package mock

import "github.com/fwojciec/ramprice"

var _ ramprice.Adapter = (*Adapter)(nil)

// Adapter is a mock implementation of ramprice.Adapter.
type Adapter struct {
	NameFn  func() string
	ParseFn func(source string) ([]ramprice.Listing, error)
}

func (a *Adapter) Name() string {
	return a.NameFn()
}

func (a *Adapter) Parse(source string) ([]ramprice.Listing, error) {
	return a.ParseFn(source)
}
