package petstore

import (
	"fmt"
	"strings"
)

// CollectionFormat is the encoding rule for array-valued query parameters.
type CollectionFormat string

const (
	CollectionCSV   CollectionFormat = "csv"
	CollectionSSV   CollectionFormat = "ssv"
	CollectionTSV   CollectionFormat = "tsv"
	CollectionPipes CollectionFormat = "pipes"
	CollectionMulti CollectionFormat = "multi"
)

// collectionSeparators is the shared join table. multi has no separator: the key repeats.
var collectionSeparators = map[CollectionFormat]string{
	CollectionCSV:   ",",
	CollectionSSV:   " ",
	CollectionTSV:   "\t",
	CollectionPipes: "|",
}

// ParseCollectionFormat maps an OpenAPI collectionFormat value. Empty means csv.
func ParseCollectionFormat(s string) (CollectionFormat, error) {
	f := CollectionFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return CollectionCSV, nil
	}
	if f == CollectionMulti {
		return f, nil
	}
	if _, ok := collectionSeparators[f]; !ok {
		return "", fmt.Errorf("unsupported collection format %q", s)
	}
	return f, nil
}

// encodeCollection renders name/values as percent-encoded query pairs.
func encodeCollection(name string, values []string, format CollectionFormat) []string {
	key := encodeComponent(name)
	if format == CollectionMulti {
		pairs := make([]string, 0, len(values))
		for _, v := range values {
			pairs = append(pairs, key+"="+encodeComponent(v))
		}
		return pairs
	}

	sep, ok := collectionSeparators[format]
	if !ok {
		sep = collectionSeparators[CollectionCSV]
	}
	return []string{key + "=" + encodeComponent(strings.Join(values, sep))}
}

// encodeComponent percent-encodes s as encodeURIComponent does: letters,
// digits and -_.!~*'() are kept, every other byte of the UTF-8 form becomes %XX.
func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if componentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func componentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
