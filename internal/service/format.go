package service

import (
	"fmt"
	"time"
)

// formatDate renders the human-facing date attached to responses.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// formatFileSize renders a byte count as B/KB/MB/GB/TB with one decimal
// place, stepping at 1024. Computed at response time, never stored.
func formatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	idx := 0
	for size >= 1024 && idx < len(units)-1 {
		size /= 1024
		idx++
	}
	return fmt.Sprintf("%.1f %s", size, units[idx])
}
