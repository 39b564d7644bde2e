//go:build !amd64 && !arm64

package hwy

func init() {
	// Other architectures have no detection yet and use the scalar width.
	setScalarMode()
}
