package bench

import "fmt"

// Method selects one of the four measured strategies: direct calls per
// record, one direct batch call, tagged dispatch per record, and tagged
// dispatch over the batch.
type Method uint8

const (
	MethodOne Method = iota
	MethodSpan
	MethodVariantOne
	MethodVariantSpan
)

func (m Method) String() string {
	switch m {
	case MethodOne:
		return "one"
	case MethodSpan:
		return "span"
	case MethodVariantOne:
		return "variant-one"
	case MethodVariantSpan:
		return "variant-span"
	default:
		return "unknown"
	}
}

// ParseMethod resolves a method by name.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "one":
		return MethodOne, nil
	case "span":
		return MethodSpan, nil
	case "variant-one":
		return MethodVariantOne, nil
	case "variant-span":
		return MethodVariantSpan, nil
	default:
		return 0, fmt.Errorf("unknown method: %s", name)
	}
}

// AllMethods lists every method in presentation order.
func AllMethods() []Method {
	return []Method{MethodOne, MethodSpan, MethodVariantOne, MethodVariantSpan}
}

// DefaultSizes returns the stack sizes the harness sweeps: powers of two up
// to 10000.
func DefaultSizes() []int {
	var sizes []int
	for n := 1; n <= 10000; n *= 2 {
		sizes = append(sizes, n)
	}
	return sizes
}
