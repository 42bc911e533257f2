package fs

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// OpenDirectory grants a directory capability backed by the local filesystem.
func OpenDirectory(path string) (Directory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", abs, ErrUnsupported)
	}
	return newOSDirectory(abs), nil
}

type osDirectory struct {
	path string
	name string
}

func newOSDirectory(path string) *osDirectory {
	name := filepath.Base(path)
	if name == string(filepath.Separator) || name == "." {
		name = path
	}
	return &osDirectory{path: path, name: norm.NFC.String(name)}
}

func (d *osDirectory) ID() HandleID { return HandleID("dir:" + d.path) }
func (d *osDirectory) Name() string { return d.name }

func (d *osDirectory) Entries(ctx context.Context) ([]Child, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", d.path, err)
	}

	children := make([]Child, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rawName := e.Name()
		fullPath := filepath.Join(d.path, rawName)
		isDir := e.IsDir()

		// Symlinks are presented as whatever they point at.
		if e.Type()&os.ModeSymlink != 0 {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		name := norm.NFC.String(rawName)
		if isDir {
			children = append(children, Child{Name: name, Kind: KindDirectory, Handle: &osDirectory{path: fullPath, name: name}})
			continue
		}
		children = append(children, Child{Name: name, Kind: KindFile, Handle: &osFile{path: fullPath, name: name}})
	}
	return children, nil
}

type osFile struct {
	path string
	name string
}

func (f *osFile) ID() HandleID { return HandleID("file:" + f.path) }
func (f *osFile) Name() string { return f.name }

func (f *osFile) Read(ctx context.Context) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	info, err := os.Stat(f.path)
	if err != nil {
		return Content{}, fmt.Errorf("cannot stat %s: %w", f.path, err)
	}
	if info.IsDir() {
		return Content{}, fmt.Errorf("cannot read %s: is a directory", f.path)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Content{}, fmt.Errorf("cannot read %s: %w", f.path, err)
	}
	return Content{
		Data:      data,
		Size:      int64(len(data)),
		Modified:  info.ModTime(),
		MediaType: MediaTypeFor(f.name),
	}, nil
}

// MediaTypeFor guesses the media type from the file extension, returning ""
// when the extension is not registered.
func MediaTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	mediaType := mime.TypeByExtension(ext)
	if mediaType == "" {
		return ""
	}
	if base, _, err := mime.ParseMediaType(mediaType); err == nil {
		return base
	}
	return mediaType
}
