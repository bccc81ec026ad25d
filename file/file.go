package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Basename strips the directory and extension from a path.
func Basename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FindGroundTruth looks in gtDir for files sharing the transcription's
// basename across the allowed extensions. On multiple matches it warns and
// keeps the first, deterministically by extension order then name. An
// empty result means no ground truth exists.
func FindGroundTruth(gtDir, transPath string, exts []string) string {
	basename := Basename(transPath)

	var matches []string
	for _, ext := range exts {
		candidate := filepath.Join(gtDir, basename+"."+ext)
		if _, err := os.Stat(candidate); err == nil {
			matches = append(matches, candidate)
		}
	}

	if len(matches) == 0 {
		return ""
	}
	if len(matches) > 1 {
		fmt.Printf("WARNING: Multiple ground truths found for transcription %v: %v. "+
			"Defaulting to the first one. Try narrowing down extensions with --gt_ext\n",
			transPath, matches)
	}
	return matches[0]
}
