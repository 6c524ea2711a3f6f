package ports

// FileSystem abstracts the file operations used by loaders and writers.
type FileSystem interface {
	// ReadFile reads a data set or config file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes a frame, summary or debug artifact, creating parent
	// directories as needed.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}
