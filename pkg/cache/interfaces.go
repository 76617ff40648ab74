//go:generate mockgen -destination=mocks/cache.go . Manager
package cache

// Manager defines the interface for cache management operations.
type Manager interface {
	Clean(options CleanOptions) (*CleanResult, error)
	GetInfo() (*Info, error)
	GetDirectory() string
}

// CleanOptions specifies what to clean from the cache.
type CleanOptions struct {
	All      bool
	Registry bool
	Logs     bool
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed    int64
	RegistryFreed int64
	LogsFreed     int64
}

// Info represents cache information.
type Info struct {
	Directory     string `json:"directory"`
	TotalSize     int64  `json:"totalSize"`
	RegistrySize  int64  `json:"registrySize"`
	RegistryFiles int    `json:"registryFiles"`
	LogsSize      int64  `json:"logsSize"`
	LogsFiles     int    `json:"logsFiles"`
}
