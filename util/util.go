package util

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GatherAllMidiPaths lists the .mid/.midi files under path, at most maxNum
// of them unless maxNum is 0. A path naming a file is returned as is.
func GatherAllMidiPaths(path string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %v", s)
		}
		if !d.IsDir() && IsMidiPath(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, err
	}
	slices.Sort(res)
	return res, nil
}

func IsMidiPath(s string) bool {
	s = strings.ToLower(s)
	return strings.HasSuffix(s, ".mid") || strings.HasSuffix(s, ".midi")
}

// GetKeys returns the keys of m in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Unique returns the distinct values of nums in ascending order.
func Unique[A constraints.Ordered](nums []A) []A {
	res := slices.Clone(nums)
	slices.Sort(res)
	return slices.Compact(res)
}

func Min[A constraints.Ordered](a, b A) A {
	if a > b {
		return b
	}
	return a
}

func Max[A constraints.Ordered](a, b A) A {
	if a < b {
		return b
	}
	return a
}

// Clamp limits v to [lo, hi].
func Clamp[A constraints.Ordered](v, lo, hi A) A {
	return Max(lo, Min(v, hi))
}

func Sum[A constraints.Integer](nums []A) int64 {
	var total int64
	for _, v := range nums {
		total += int64(v)
	}
	return total
}
