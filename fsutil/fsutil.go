// Package fsutil holds the file plumbing shared by the downloaders and the
// CLI: downloads, zip extraction, and directory/copy helpers, all driven
// by a single overwrite policy.
package fsutil

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Overwrite selects what to do when a target path already exists.
type Overwrite int

const (
	// OverwriteSkip leaves the existing path alone and warns. The default.
	OverwriteSkip Overwrite = iota
	// OverwriteReplace deletes the existing path first.
	OverwriteReplace
	// OverwriteFail returns an error.
	OverwriteFail
)

// ParseOverwrite maps the CLI flag value onto the tri-state: "true"
// replaces, "false" fails, unset skips with a warning.
func ParseOverwrite(s string) (Overwrite, error) {
	switch s {
	case "":
		return OverwriteSkip, nil
	case "true":
		return OverwriteReplace, nil
	case "false":
		return OverwriteFail, nil
	}
	return 0, fmt.Errorf("overwrite should be true, false or unset, not %q", s)
}

// DownloadFile fetches a url and saves it to dest, honoring the overwrite
// policy when dest already exists.
func DownloadFile(source, dest string, overwrite Overwrite) error {
	fmt.Printf("Downloading %v to %v\n", source, dest)
	if _, err := os.Stat(dest); err == nil {
		switch overwrite {
		case OverwriteSkip:
			fmt.Printf("WARNING: %v already exists, not downloading\n", dest)
			return nil
		case OverwriteFail:
			return fmt.Errorf("%v already exists", dest)
		}
	}

	resp, err := http.Get(source)
	if err != nil {
		return fmt.Errorf("fetching %v: %w", source, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %v: %v", source, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, resp.Body)
	return err
}

// MakeDirectory creates a directory, applying the overwrite policy when it
// already exists: replace deletes and recreates, skip warns that existing
// files within stay put, fail errors.
func MakeDirectory(path string, overwrite Overwrite) error {
	fmt.Printf("Making directory at %v\n", path)
	if _, err := os.Stat(path); err == nil {
		switch overwrite {
		case OverwriteReplace:
			fmt.Printf("Deleting existing directory: %v\n", path)
			if err := os.RemoveAll(path); err != nil {
				return err
			}
		case OverwriteSkip:
			fmt.Printf("WARNING: %v already exists, writing files within here "+
				"only if they do not already exist\n", path)
			return nil
		case OverwriteFail:
			return fmt.Errorf("%v already exists", path)
		}
	}
	return os.MkdirAll(path, 0777)
}

// ExtractZip unpacks zipPath under outPath and returns the directory named
// after the archive. If that directory already exists the overwrite policy
// applies; skip assumes the zip was extracted before and does nothing.
func ExtractZip(zipPath, outPath string, overwrite Overwrite) (string, error) {
	fmt.Printf("Extracting %v to %v\n", zipPath, outPath)
	dirname := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	extractedPath := filepath.Join(outPath, dirname)

	if _, err := os.Stat(extractedPath); err == nil {
		switch overwrite {
		case OverwriteReplace:
			fmt.Printf("Deleting existing directory: %v\n", extractedPath)
			if err := os.RemoveAll(extractedPath); err != nil {
				return "", err
			}
		case OverwriteSkip:
			fmt.Printf("WARNING: %v already exists. Assuming this zip has "+
				"already been extracted, not extracting\n", extractedPath)
			return extractedPath, nil
		case OverwriteFail:
			return "", fmt.Errorf("%v already exists", extractedPath)
		}
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("opening %v: %w", zipPath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractZipEntry(f, outPath); err != nil {
			return "", err
		}
	}
	return extractedPath, nil
}

func extractZipEntry(f *zip.File, outPath string) error {
	dest := filepath.Join(outPath, f.Name)
	// refuse entries that would escape outPath
	if !strings.HasPrefix(dest, filepath.Clean(outPath)+string(os.PathSeparator)) {
		return fmt.Errorf("zip entry %v escapes %v", f.Name, outPath)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0777)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0777); err != nil {
		return err
	}

	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// CopyFile copies filepath into outputDir under its base name. An existing
// target follows the overwrite policy; skip is silent here since copies
// are bulk operations.
func CopyFile(sourcePath, outputDir string, overwrite Overwrite) error {
	dest := filepath.Join(outputDir, filepath.Base(sourcePath))
	if _, err := os.Stat(dest); err == nil {
		switch overwrite {
		case OverwriteSkip:
			return nil
		case OverwriteFail:
			return fmt.Errorf("%v already exists", dest)
		}
	}

	in, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
