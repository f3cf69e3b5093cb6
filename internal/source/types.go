package source

// DiscoveredFile is one table file resolved inside the data directory, with
// the mtime and size read when it was found.
type DiscoveredFile struct {
	Table     string // model.Table* name
	Path      string
	MtimeNs   int64
	SizeBytes int64
}
