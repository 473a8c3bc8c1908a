package collective

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReduceBytesOps(t *testing.T) {
	dst := []byte{10, 200, 5, 250}
	src := []byte{20, 100, 5, 10}

	got := append([]byte(nil), dst...)
	reduceBytes(got, src, Max)
	require.Equal(t, []byte{20, 200, 5, 250}, got)

	got = append([]byte(nil), dst...)
	reduceBytes(got, src, Min)
	require.Equal(t, []byte{10, 100, 5, 10}, got)

	got = append([]byte(nil), dst...)
	reduceBytes(got, src, Sum)
	require.Equal(t, []byte{30, 44, 10, 4}, got) // 200+100=300 -> 44 mod 256, 250+10=260 -> 4 mod 256

	got = append([]byte(nil), dst...)
	reduceBytes(got, src, Prod)
	require.Equal(t, []byte{200, 32, 25, 196}, got) // 200*100=20000 -> 20000 mod 256 = 32, 250*10=2500 -> 2500 mod 256 = 196
}

func TestNoopIsMax(t *testing.T) {
	require.Equal(t, Max, Noop)
}
