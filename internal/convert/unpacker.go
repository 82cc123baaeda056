package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"linux-tiltfx/internal/utils"
)

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

const maxPkgString = 1 << 16

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > maxPkgString {
		return "", fmt.Errorf("pkg: string of %d bytes", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPkgIndex reads the header of a scene package and returns its entries
// and the offset their data is relative to.
func ReadPkgIndex(r io.ReadSeeker) (string, []FileEntry, int64, error) {
	version, err := readPkgString(r)
	if err != nil {
		return "", nil, 0, fmt.Errorf("pkg: version: %w", err)
	}

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return "", nil, 0, fmt.Errorf("pkg: file count: %w", err)
	}

	entries := make([]FileEntry, 0, min(fileCount, 4096))
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return "", nil, 0, fmt.Errorf("pkg: entry %d: %w", i, err)
		}
		var offset, size uint32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return "", nil, 0, fmt.Errorf("pkg: entry %d: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return "", nil, 0, fmt.Errorf("pkg: entry %d: %w", i, err)
		}
		entries = append(entries, FileEntry{Name: name, Offset: offset, Size: size})
	}

	dataStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", nil, 0, err
	}
	return version, entries, dataStart, nil
}

// ExtractPkg unpacks a scene package into outputDir.
func ExtractPkg(pkgPath, outputDir string) error {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return err
	}
	defer f.Close()

	version, entries, dataStartPos, err := ReadPkgIndex(f)
	if err != nil {
		return err
	}
	utils.Debug("Unpacker: Package Version: %s, %d files", version, len(entries))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for i, entry := range entries {
		destPath, err := safeJoin(outputDir, entry.Name)
		if err != nil {
			return err
		}
		if i%10 == 0 || i == len(entries)-1 {
			utils.Debug("Unpacker: Extracting file %d/%d: %s", i+1, len(entries), entry.Name)
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}

		if _, err := f.Seek(dataStartPos+int64(entry.Offset), io.SeekStart); err != nil {
			return err
		}

		outF, err := os.Create(destPath)
		if err != nil {
			return err
		}

		_, err = io.CopyN(outF, f, int64(entry.Size))
		outF.Close()
		if err != nil {
			return fmt.Errorf("pkg: %s: %w", entry.Name, err)
		}
	}

	utils.Debug("Unpacker: Extraction completed successfully")
	return nil
}

func safeJoin(root, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("pkg: entry %q escapes the output directory", name)
	}
	return filepath.Join(root, clean), nil
}

// FindSceneJSON returns the path of the first scene.json below root.
func FindSceneJSON(root string) (string, error) {
	var found string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && info.Name() == "scene.json" {
			utils.Debug("Found scene.json at: %s", path)
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("scene.json not found in %s: %w", root, os.ErrNotExist)
	}
	return found, nil
}
