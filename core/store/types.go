package store

// VersionToken is the opaque version identifier the store returns on every
// read and requires on every write. It is compared byte-for-byte by the store
// and must never be parsed or interpreted locally.
type VersionToken string

// IsZero reports whether the token is empty. An empty token is only valid
// on the first write of an object that does not exist yet.
func (t VersionToken) IsZero() bool {
	return t == ""
}

// BlobRef identifies a content blob inside the store's object graph.
type BlobRef string

// TreeRef identifies a tree (directory snapshot) inside the store's object graph.
type TreeRef string

// CommitRef identifies a commit inside the store's object graph.
type CommitRef string

// TreeEntry describes a single path inside a new tree. An empty Blob marks
// the path for deletion from the base tree.
type TreeEntry struct {
	Path string `json:"path"`
	Blob BlobRef `json:"blob,omitempty"`
}

// IsDelete reports whether this entry removes its path from the tree.
func (e TreeEntry) IsDelete() bool {
	return e.Blob == ""
}
