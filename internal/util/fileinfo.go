package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"syscall"
)

// FileInfo identifies a call-log file version: modification time, size and
// inode. The cache layer uses it to decide whether a parsed file is stale.
type FileInfo struct {
	ModTime int64  `json:"modTime"`
	Size    int64  `json:"size"`
	Inode   uint64 `json:"inode"`
}

// GetFileInfo stats the file and extracts the inode. Linux and macOS only.
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	sysStat, ok := stat.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("failed to get file system information: %s", path)
	}

	return &FileInfo{
		ModTime: stat.ModTime().Unix(),
		Size:    stat.Size(),
		Inode:   sysStat.Ino,
	}, nil
}

// CalculateFileFingerprint returns a CRC32 of the last 2KB of the file.
// Call logs are append-only, so the tail changes whenever new calls land.
func CalculateFileFingerprint(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}

	readSize := int64(2048)
	if stat.Size() < readSize {
		readSize = stat.Size()
	}
	if readSize == 0 {
		return "00000000", nil
	}

	if _, err := file.Seek(-readSize, io.SeekEnd); err != nil {
		return "", err
	}

	data := make([]byte, readSize)
	if _, err := io.ReadFull(file, data); err != nil {
		return "", err
	}

	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)), nil
}
