// Package file reads and writes the JSON documents the commands exchange:
// scores, bars and segment lists.
package file

import (
	"encoding/json"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"

	"github.com/Reu7en/Intervision-sub000/model"
)

// Decode reads one JSON document of type T from r. Unknown fields are
// rejected.
func Decode[T any](r io.Reader) (*T, error) {
	var v T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "could not decode")
	}
	return &v, nil
}

func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "could not encode")
}

func Read[T any](fsys fs.FS, name string) (*T, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %v", name)
	}
	defer f.Close()
	v, err := Decode[T](f)
	return v, errors.Wrap(err, name)
}

func Write(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not recreate %v", path)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return Encode(f, v)
}

func ReadScore(fsys fs.FS, name string) (*model.Score, error) {
	return Read[model.Score](fsys, name)
}

func WriteScore(path string, score *model.Score) error {
	return Write(path, score)
}

// Open returns stdin for "-" and the named file otherwise.
func Open(name string) (io.ReadCloser, error) {
	if name == "-" || name == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %v", name)
	}
	return f, nil
}
