package univalue

// DefaultMaxDepth is the container nesting limit applied by Read unless
// WithMaxDepth overrides it.
const DefaultMaxDepth = 512

// SurrogateMode controls how \uXXXX escapes in the UTF-16 surrogate range are
// decoded.
type SurrogateMode int

const (
	// SurrogatesCombine decodes a high surrogate escape immediately followed
	// by a low surrogate escape as one code point (4 UTF-8 bytes). Unpaired
	// surrogates are encoded on their own.
	SurrogatesCombine SurrogateMode = iota
	// SurrogatesSplit encodes every escape as its own 3-byte sequence,
	// including both halves of a pair.
	SurrogatesSplit
)

// DuplicateKeyMode controls what Read does with repeated object keys.
type DuplicateKeyMode int

const (
	// DuplicatesKeep stores every pair; Find returns the first.
	DuplicatesKeep DuplicateKeyMode = iota
	// DuplicatesReject fails the parse with ErrDuplicateKey.
	DuplicatesReject
)

type options struct {
	surrogates SurrogateMode
	duplicates DuplicateKeyMode
	maxDepth   int
}

// Option configures Read and NewTokenizer.
type Option func(*options)

// WithSurrogates sets the surrogate pair decoding mode.
func WithSurrogates(mode SurrogateMode) Option {
	return func(o *options) { o.surrogates = mode }
}

// WithDuplicateKeys sets the duplicate key policy.
func WithDuplicateKeys(mode DuplicateKeyMode) Option {
	return func(o *options) { o.duplicates = mode }
}

// WithMaxDepth limits container nesting. Zero disables the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
