package collective

// Op identifies an elementwise byte reduction operator. Arithmetic is
// intentionally kept at uint8 width so Sum/Prod wrap modulo 256 for
// free, the way Go's fixed-width unsigned integers always do — no
// explicit "% 256" is needed or correct to add, since promoting to a
// wider type before reducing would change the result.
type Op int

const (
	Max Op = iota
	Min
	Sum
	Prod
)

// Noop is the sentinel used for synchronization-only Collects with
// count=0 (Barrier, and the sync phase of Bcast). Defined equal to Max
// so a zero-length fold is a harmless no-op reduction.
const Noop = Max

// reduceBytes folds src into dst elementwise under op. len(dst) must
// equal len(src).
func reduceBytes(dst, src []byte, op Op) {
	switch op {
	case Max:
		for i := range dst {
			if src[i] > dst[i] {
				dst[i] = src[i]
			}
		}
	case Min:
		for i := range dst {
			if src[i] < dst[i] {
				dst[i] = src[i]
			}
		}
	case Sum:
		for i := range dst {
			dst[i] += src[i]
		}
	case Prod:
		for i := range dst {
			dst[i] *= src[i]
		}
	}
}
