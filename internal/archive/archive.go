// Package archive writes the zip artifacts produced by the archive operation.
package archive

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/model"
)

// DefaultNameLayout renders a date as ddMMyyyy.
const DefaultNameLayout = "02012006"

// Entry is one file stored in an archive under Name.
type Entry struct {
	Name string
	Path string
}

// Name returns the artifact file name for a range, e.g. "01012024-05012024.zip".
func Name(r model.DateRange, layout string) string {
	if layout == "" {
		layout = DefaultNameLayout
	}
	return r.From.Format(layout) + "-" + r.To.Format(layout) + ".zip"
}

// Flatten maps paths to entries named by their base name. When two paths
// share a base name the later path replaces the earlier one, keeping the
// earlier position.
func Flatten(paths []string) []Entry {
	entries := make([]Entry, 0, len(paths))
	index := make(map[string]int, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		if i, ok := index[name]; ok {
			entries[i].Path = p
			continue
		}
		index[name] = len(entries)
		entries = append(entries, Entry{Name: name, Path: p})
	}
	return entries
}

// Write creates dest and stores every entry in it. dest must not exist yet.
// On failure the partially written file is removed.
func Write(dest string, entries []Entry) (err error) {
	zipFile, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return logerr.New(logerr.FileWriteError, "create "+dest, err)
	}
	defer func() {
		if err != nil {
			os.Remove(dest)
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	for _, e := range entries {
		if err = addEntry(zipWriter, e); err != nil {
			zipWriter.Close()
			zipFile.Close()
			return err
		}
	}

	if err = zipWriter.Close(); err != nil {
		zipFile.Close()
		return logerr.New(logerr.FileWriteError, "finalize "+dest, err)
	}
	if err = zipFile.Close(); err != nil {
		return logerr.New(logerr.FileWriteError, "close "+dest, err)
	}
	return nil
}

func addEntry(zw *zip.Writer, e Entry) error {
	src, err := os.Open(e.Path)
	if err != nil {
		return logerr.New(logerr.FileReadError, e.Path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return logerr.New(logerr.FileReadError, e.Path, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return logerr.New(logerr.FileWriteError, e.Path, err)
	}
	header.Name = e.Name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return logerr.New(logerr.FileWriteError, e.Path, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return logerr.New(logerr.FileWriteError, e.Path, err)
	}
	return nil
}
