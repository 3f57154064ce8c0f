package paths

import "path"

// Standard directories of the virtual file system
const (
	Documents = "/documents"
	Images    = "/images"
	Music     = "/music"
)

// StandardDirectories returns the directories created when a desktop boots
func StandardDirectories() []string {
	return []string{Documents, Images, Music}
}

// InDocuments joins name onto the documents directory
func InDocuments(name string) string {
	return path.Join(Documents, name)
}
