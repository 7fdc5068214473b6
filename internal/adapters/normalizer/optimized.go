package normalizer

import (
	"unicode"

	"github.com/Khushi-Roy-123/MOSIP/internal/pool"
	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// Per-byte decision classes for ASCII input.
const (
	classDrop  byte = iota // punctuation, symbols, control characters
	classSpace             // whitespace, collapsed on output
	classKeep              // already-lowercase word byte
	classLower             // uppercase letter, emitted lowercased
)

// OptimizedNormalizer implements the same normalization as
// DefaultNormalizer with a precomputed ASCII decision table and buffer
// pooling to cut allocations on hot comparison paths.
type OptimizedNormalizer struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(4096),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsSpace(r):
			n.asciiTable[i] = classSpace
		case r >= 'A' && r <= 'Z':
			n.asciiTable[i] = classLower
		case isWordRune(r):
			n.asciiTable[i] = classKeep
		default:
			n.asciiTable[i] = classDrop
		}
	}

	return n
}

// Normalize canonicalizes text for comparison using the ASCII fast path
// where possible.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	if asciiOnly {
		pendingSpace := false
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case classSpace:
				pendingSpace = true
			case classLower:
				b += 'a' - 'A'
				fallthrough
			case classKeep:
				if pendingSpace && len(*buffer) > 0 {
					*buffer = append(*buffer, ' ')
				}
				pendingSpace = false
				*buffer = append(*buffer, b)
			}
		}
		return string(*buffer)
	}

	// Mixed ASCII/Unicode path.
	pendingSpace := false
	for _, r := range text {
		var keep bool
		if r < 128 {
			switch n.asciiTable[r] {
			case classSpace:
				pendingSpace = true
			case classLower:
				r += 'a' - 'A'
				keep = true
			case classKeep:
				keep = true
			}
		} else {
			switch {
			case unicode.IsSpace(r):
				pendingSpace = true
			case isWordRune(r):
				r = unicode.ToLower(r)
				keep = true
			}
		}
		if keep {
			if pendingSpace && len(*buffer) > 0 {
				*buffer = append(*buffer, ' ')
			}
			pendingSpace = false
			*buffer = append(*buffer, []byte(string(r))...)
		}
	}

	return string(*buffer)
}

// FastNormalizer trades the byte buffer for pooled strings.Builder
// instances, which measure slightly faster on short field values.
type FastNormalizer struct {
	asciiTable  [128]byte
	builderPool *pool.StringBuilderPool
}

// NewFastNormalizer creates a new fast normalizer with precomputed tables
func NewFastNormalizer() ports.Normalizer {
	n := &FastNormalizer{
		builderPool: pool.NewStringBuilderPool(),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsSpace(r):
			n.asciiTable[i] = classSpace
		case r >= 'A' && r <= 'Z':
			n.asciiTable[i] = classLower
		case isWordRune(r):
			n.asciiTable[i] = classKeep
		default:
			n.asciiTable[i] = classDrop
		}
	}

	return n
}

// Normalize performs normalization with pre-computed decisions for ASCII
func (n *FastNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	sb := n.builderPool.Get()
	defer n.builderPool.Put(sb)
	sb.Grow(len(text))

	pendingSpace := false
	writeWord := func(r rune) {
		if pendingSpace && sb.Len() > 0 {
			sb.WriteRune(' ')
		}
		pendingSpace = false
		sb.WriteRune(r)
	}

	for _, r := range text {
		if r < 128 {
			switch n.asciiTable[r] {
			case classSpace:
				pendingSpace = true
			case classLower:
				writeWord(r + ('a' - 'A'))
			case classKeep:
				writeWord(r)
			}
			continue
		}
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case isWordRune(r):
			writeWord(unicode.ToLower(r))
		}
	}

	return sb.String()
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType is the straightforward rune-at-a-time normalizer
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses buffer pooling and an ASCII decision table
	OptimizedNormalizerType
	// FastNormalizerType uses pooled builders, tuned for short field values
	FastNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	case FastNormalizerType:
		return NewFastNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}

// compile-time interface checks
var (
	_ ports.Normalizer = (*DefaultNormalizer)(nil)
	_ ports.Normalizer = (*OptimizedNormalizer)(nil)
	_ ports.Normalizer = (*FastNormalizer)(nil)
)
