// Package download fetches the source datasets the toolkit degrades.
package download

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/yagyapandeya/midi-degradation-toolkit/constants"
	"github.com/yagyapandeya/midi-degradation-toolkit/fsutil"
	"github.com/yagyapandeya/midi-degradation-toolkit/util"
)

const ppddBaseURL = "http://tomcollinsresearch.net/research/data/mirex/ppdd/ppdd-sep2018"

// PPDD downloads the MIREX Patterns for Prediction Development Dataset
// (September 2018 symbolic release).
//
// https://www.music-ir.org/mirex/wiki/2019:Patterns_for_Prediction
type PPDD struct {
	Name     string
	URLs     []string
	CacheDir string
}

// NewPPDD configures a downloader for the monophonic or polyphonic
// variant. An empty cacheDir falls back to the toolkit cache.
func NewPPDD(monophonic bool, cacheDir string) PPDD {
	kind := "poly"
	name := "PPDDSep2018Polyphonic"
	if monophonic {
		kind = "mono"
		name = "PPDDSep2018Monophonic"
	}
	if cacheDir == "" {
		cacheDir = constants.GetCacheDir()
	}

	var urls []string
	for _, size := range []string{"small", "medium", "large"} {
		urls = append(urls, fmt.Sprintf("%v/PPDD-Sep2018_sym_%v_%v.zip", ppddBaseURL, kind, size))
	}
	return PPDD{Name: name, URLs: urls, CacheDir: cacheDir}
}

// DownloadAndExtract fetches each archive into the cache directory and
// unpacks it, applying the overwrite policy to the dataset directory, each
// zip, and each extracted directory.
func (d PPDD) DownloadAndExtract(overwrite fsutil.Overwrite) error {
	basePath := filepath.Join(d.CacheDir, d.Name)
	if err := fsutil.MakeDirectory(basePath, overwrite); err != nil {
		return err
	}

	for _, url := range d.URLs {
		dest := filepath.Join(basePath, path.Base(url))
		if err := fsutil.DownloadFile(url, dest, overwrite); err != nil {
			return err
		}
		if _, err := fsutil.ExtractZip(dest, basePath, overwrite); err != nil {
			return err
		}
	}
	return nil
}

// CopyMidi gathers every MIDI file under the extracted dataset and copies
// it flat into outputDir.
func (d PPDD) CopyMidi(outputDir string, overwrite fsutil.Overwrite) error {
	if err := fsutil.MakeDirectory(outputDir, fsutil.OverwriteSkip); err != nil {
		return err
	}

	basePath := filepath.Join(d.CacheDir, d.Name)
	paths := util.GatherPaths(basePath, "mid", true, 0)
	fmt.Printf("Copying %v midi files to %v\n", len(paths), outputDir)
	for _, p := range paths {
		if err := fsutil.CopyFile(p, outputDir, overwrite); err != nil {
			return err
		}
	}
	return nil
}
