// Package util holds the file helpers shared by the command line tools.
package util

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// Read returns the contents of fileName, or of standard input for "-".
func Read(fileName string) ([]byte, error) {
	if fileName == "-" {
		return io.ReadAll(bufio.NewReader(os.Stdin))
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(bufio.NewReader(f))
}

// Write stores buf in fileName, or prints it for "" and "-". Files are
// replaced atomically so a failed run never leaves half a report.
func Write(buf []byte, fileName string) error {
	if fileName == "" || fileName == "-" {
		_, err := os.Stdout.Write(buf)
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(fileName), "."+filepath.Base(fileName)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	n := 0
	for n < len(buf) {
		m, err := f.Write(buf[n:])
		if err != nil {
			f.Close()
			return err
		}
		n += m
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(f.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(f.Name(), fileName)
}
