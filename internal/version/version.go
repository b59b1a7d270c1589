// ABOUTME: Version and product identification constants
// ABOUTME: Printed by the swfsound -version flag
package version

const (
	// Version is the release version
	Version = "0.1.0"

	// Product is the tool name
	Product = "swfsound"

	// Manufacturer identifies the maintainers
	Manufacturer = "Resonate Protocol"
)

// String returns the one-line version banner
func String() string {
	return Product + " " + Version + " (" + Manufacturer + ")"
}
