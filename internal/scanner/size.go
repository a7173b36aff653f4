package scanner

import "fmt"

// FormatSize renders a byte count for display using 1024-based units.
func FormatSize(bytes int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
		gib = 1024 * mib
	)
	switch {
	case bytes < kib:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mib:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kib)
	case bytes < gib:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mib)
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gib)
	}
}
