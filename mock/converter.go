package mock

import "github.com/fwojciec/podscribe"

var _ podscribe.Converter = (*Converter)(nil)

// Converter is a mock implementation of podscribe.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
