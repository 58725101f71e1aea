package processing

import (
	"io/fs"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListImages walks root recursively and returns image files in lexical order.
// A symlinked root is followed, returned paths stay under root as given.
func ListImages(root string) (result []string, err error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsImagePath(path) {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		result = append(result, filepath.Join(root, rel))
		return nil
	})
	return
}

// LabelFromPath returns the name of the directory the image is in
func LabelFromPath(path string) string {
	return filepath.Base(filepath.Dir(path))
}
