//go:build pprof

package profile

import "github.com/pkg/profile"

// setting accumulates pkg/profile options.
type setting func(control) control

type control struct {
	opts []func(*profile.Profile)
}

func (c control) with(s ...setting) control {
	for _, fn := range s {
		c = fn(c)
	}

	return c
}

func withMode(m string) setting {
	return func(c control) control {
		if fn, ok := mode[m]; ok {
			c.opts = append(c.opts, fn)
		}

		return c
	}
}

func withPath(p string) setting {
	return func(c control) control {
		if p != "" {
			c.opts = append(c.opts, profile.ProfilePath(p))
		}

		return c
	}
}

func withQuiet(v bool) setting {
	return func(c control) control {
		if v {
			c.opts = append(c.opts, profile.Quiet)
		}

		return c
	}
}
