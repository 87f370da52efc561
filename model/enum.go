package model

import (
	"github.com/pkg/errors"
)

var ErrUnknownName = errors.New("unknown name")

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

func indexOf(names []string, kind, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownName, "%s %q", kind, name)
}
