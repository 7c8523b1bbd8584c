package logger

// MaskAddress shortens a wallet address for log output.
// Example: 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 -> 0xd8dA...6045
func MaskAddress(address string) string {
	if address == "" {
		return ""
	}

	if len(address) <= 10 {
		return address
	}

	return address[:6] + "..." + address[len(address)-4:]
}
