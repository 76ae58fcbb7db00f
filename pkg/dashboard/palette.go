package dashboard

// palette is the fixed chart palette; entries are assigned to list positions
// cyclically.
var palette = []string{
	"#2563eb", // blue
	"#16a34a", // green
	"#f59e0b", // amber
	"#dc2626", // red
	"#7c3aed", // violet
	"#0d9488", // teal
}

// ColorAt returns the palette color for a list position, cycling when the
// list is longer than the palette.
func ColorAt(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}
