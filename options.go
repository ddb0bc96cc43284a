package prophetutils

import "github.com/Hey-Savvie/prophet-utils/transform"

// Options configures the pipeline's transform selection
type Options struct {
	Transform *transform.Options `json:"transform"`
}

// NewDefaultOptions returns a default set of pipeline options using a log
// transform with auto-offsetting
func NewDefaultOptions() *Options {
	return &Options{
		Transform: transform.NewDefaultOptions(),
	}
}
