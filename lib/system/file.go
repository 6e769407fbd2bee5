package system

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gravitational/uitest/lib/constants"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// WriteFile writes data to path atomically using SharedReadWriteMask as permissions.
// Missing parent directories are created
func WriteFile(path string, data []byte) error {
	return WriteFileWithPerms(path, data, constants.SharedReadWriteMask)
}

// WriteFileWithPerms writes data to path atomically.
// If path does not exist, it is created with permissions perm.
// If the write fails, the existing contents of path are preserved.
// Adopted with modifications from https://go-review.googlesource.com/#/c/1591/9/src/io/ioutil/ioutil.go
func WriteFileWithPerms(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.SharedDirMask); err != nil {
		return trace.ConvertSystemError(err)
	}
	tmp, err := ioutil.TempFile(dir, "."+filepath.Base(path))
	if err != nil {
		return trace.ConvertSystemError(err)
	}

	cleanup := func() {
		err := os.Remove(tmp.Name())
		if err != nil {
			log.Warnf("Failed to remove %v: %v.", tmp.Name(), err)
		}
	}

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		cleanup()
		return trace.ConvertSystemError(err)
	}
	if err = tmp.Close(); err != nil {
		cleanup()
		return trace.ConvertSystemError(err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		cleanup()
		return trace.ConvertSystemError(err)
	}
	err = os.Rename(tmp.Name(), path)
	if err != nil {
		cleanup()
		return trace.ConvertSystemError(err)
	}
	return nil
}

// RemoveContents removes the contents of the specified directory
// keeping the directory itself
func RemoveContents(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return trace.ConvertSystemError(err)
	}
	defer d.Close()
	names, err := d.Readdirnames(-1)
	if err != nil {
		return trace.ConvertSystemError(err)
	}
	for _, name := range names {
		err = os.RemoveAll(filepath.Join(dir, name))
		if err != nil {
			return trace.ConvertSystemError(err)
		}
	}
	return nil
}
