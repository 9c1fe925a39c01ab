// Package romfile reads CHIP-8 program images from disk, unpacking them
// from .zip, .gz or .7z archives when needed.
package romfile

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	"github.com/massung/chip8vm/chip8"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("archive contains no files")

// Load reads the file at path and returns the program it contains. Archives
// are opened and their first file is returned.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	program, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", filepath.Base(path), err)
	}

	return program, nil
}

// Decode unpacks data according to the file extension ext. Unknown
// extensions are returned as is. At most one byte more than fits in
// memory is unpacked, leaving the size check to the machine.
func Decode(ext string, data []byte) ([]byte, error) {
	r := bytes.NewReader(data)

	var decoder io.Reader

	switch strings.ToLower(ext) {
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()

		decoder = gz
	case ".zip":
		zr, err := zip.NewReader(r, int64(len(data)))
		if err != nil {
			return nil, err
		}

		f, err := firstZip(zr.File)
		if err != nil {
			return nil, err
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		decoder = rc
	case ".7z":
		sr, err := sevenzip.NewReader(r, int64(len(data)))
		if err != nil {
			return nil, err
		}

		f, err := first7z(sr.File)
		if err != nil {
			return nil, err
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		decoder = rc
	default:
		return data, nil
	}

	return io.ReadAll(io.LimitReader(decoder, chip8.MaxProgramSize+1))
}

// firstZip returns the first regular file of a zip archive.
func firstZip(files []*zip.File) (*zip.File, error) {
	for _, f := range files {
		if !f.FileInfo().IsDir() {
			return f, nil
		}
	}

	return nil, ErrEmptyArchive
}

// first7z returns the first regular file of a 7z archive.
func first7z(files []*sevenzip.File) (*sevenzip.File, error) {
	for _, f := range files {
		if !f.FileInfo().IsDir() {
			return f, nil
		}
	}

	return nil, ErrEmptyArchive
}
