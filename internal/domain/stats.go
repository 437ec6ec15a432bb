package domain

// CatalogStats summarises the contents of the local store.
type CatalogStats struct {
	Projects           int64
	ProjectsByCategory map[Category]int64
	Events             int64
}
