package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithPageSize sets the page capacity of the underlying character buffer.
func WithPageSize(size int) Option {
	return func(b *Buffer) {
		if size > 0 {
			b.pageSize = size
		}
	}
}
