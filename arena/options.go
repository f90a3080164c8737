// SPDX-License-Identifier: MIT

package arena

// DefaultLocked keeps the region pageable unless WithLocked is given.
const DefaultLocked = false

// Option mutates internal arena options.
type Option func(*options)

type options struct {
	locked bool // pin the region in RAM (mlock) right after mapping
}

// WithLocked pins the mapped region in physical memory so solver scratch
// never pages out. Subject to the process memlock limit.
func WithLocked() Option {
	return func(o *options) { o.locked = true }
}

func gatherOptions(user ...Option) options {
	o := options{locked: DefaultLocked}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
