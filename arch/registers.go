package arch

// Register file layout.
const (
	RegisterCount = 16  // Number of general purpose registers V0-VF.
	VF            = 0xf // Flag register index.
	RPLCount      = 8   // Number of RPL user flag registers.
)

var registerNames = [RegisterCount]string{
	"V0", "V1", "V2", "V3", "V4", "V5", "V6", "V7",
	"V8", "V9", "VA", "VB", "VC", "VD", "VE", "VF",
}

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return registerNames[n]
}
