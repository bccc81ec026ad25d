package util

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// GatherPaths collects every file under dir with the given extension (no
// leading dot). Non-recursive calls only look at dir's direct children.
// maxNum of 0 means no limit. The result is sorted for determinism.
func GatherPaths(dir, ext string, recursive bool, maxNum int) []string {
	var res []string
	suffix := "." + ext
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if d.IsDir() {
			if !recursive && s != dir {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(s, suffix) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	filepath.WalkDir(dir, walk)
	sort.Strings(res)
	return res
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Abs[A constraints.Integer](num A) A {
	if num < 0 {
		return -num
	}
	return num
}
