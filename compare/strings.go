package compare

import (
	"strings"
	"sync"
	"unicode/utf8"

	"facette.io/natsort"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Strings compares two strings lexicographically by code point. The result is
// the difference between the first pair of differing code points or, when one
// string is a prefix of the other, the difference in length. So "write"
// compared to "read" yields 5 and "bar" compared to "foo" yields -4.
//
// Invalid UTF-8 bytes are compared by byte value, so only equal strings
// compare as 0.
func Strings(a, b string) int {
	for a != "" && b != "" {
		ra, sizeA := utf8.DecodeRuneInString(a)
		rb, sizeB := utf8.DecodeRuneInString(b)

		switch {
		case ra != rb:
			return int(ra) - int(rb)
		case a[:sizeA] != b[:sizeB]:
			// Both decoded to utf8.RuneError from different bytes.
			if diff := int(a[0]) - int(b[0]); diff != 0 {
				return diff
			}

			return strings.Compare(a, b)
		}

		a, b = a[sizeA:], b[sizeB:]
	}

	return utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
}

// NaturalStrings orders strings the way people read them, treating runs of
// digits as numbers: "file2" sorts before "file10". Strings that are equal
// under that order but not byte-equal fall back to Strings.
func NaturalStrings(a, b string) int {
	switch {
	case a == b:
		return 0
	case natsort.Compare(a, b):
		return -1
	case natsort.Compare(b, a):
		return 1
	default:
		return Strings(a, b)
	}
}

// Collated returns a locale-aware string ordering for the given language.
// The underlying collator is not safe for concurrent use, so calls are serialized.
func Collated(tag language.Tag, opts ...collate.Option) Func[string] {
	var mu sync.Mutex

	collator := collate.New(tag, opts...)

	return func(a, b string) int {
		mu.Lock()
		defer mu.Unlock()

		return collator.CompareString(a, b)
	}
}
