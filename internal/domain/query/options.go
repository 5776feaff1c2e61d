package query

import "net/http"

// OptionsResolver supplies the execution configuration for one inbound
// call. One implementation wraps a constant, another invokes a computation
// over the request; either way the resolver runs exactly once per call,
// before the engine executes.
type OptionsResolver interface {
	Resolve(w http.ResponseWriter, r *http.Request) (*Options, error)
}

// ResolverFunc adapts a function to the OptionsResolver interface.
type ResolverFunc func(w http.ResponseWriter, r *http.Request) (*Options, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(w http.ResponseWriter, r *http.Request) (*Options, error) {
	return f(w, r)
}

// Static returns a resolver that always yields opts.
func Static(opts *Options) OptionsResolver {
	return staticResolver{opts: opts}
}

type staticResolver struct {
	opts *Options
}

func (s staticResolver) Resolve(http.ResponseWriter, *http.Request) (*Options, error) {
	return s.opts, nil
}
