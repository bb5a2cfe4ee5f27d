package util

import (
	"fmt"
	"os"
	"syscall"
)

// FileInfo is the identity of a lineup file used to validate cached parses.
type FileInfo struct {
	ModTime int64  `json:"modTime"`
	Size    int64  `json:"size"`
	Inode   uint64 `json:"inode"`
}

// GetFileInfo stats path. Supported on Linux and macOS.
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	sysStat, ok := stat.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("failed to get file system information: %s", path)
	}

	return &FileInfo{
		ModTime: stat.ModTime().UnixNano(),
		Size:    stat.Size(),
		Inode:   sysStat.Ino,
	}, nil
}
