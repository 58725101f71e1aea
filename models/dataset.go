package models

import (
	"errors"
)

var ErrMisaligned = errors.New("encodings and names are not index-aligned")

// Dataset holds known encodings and the name for each of them.
// Encodings[i] always belongs to Names[i].
type Dataset struct {
	Encodings []Encoding
	Names     []string
}

func NewDataset() *Dataset {
	return &Dataset{
		Encodings: []Encoding{},
		Names:     []string{},
	}
}

func (d *Dataset) Append(encoding Encoding, name string) {
	d.Encodings = append(d.Encodings, encoding)
	d.Names = append(d.Names, name)
}

func (d *Dataset) Len() int {
	return len(d.Names)
}

func (d *Dataset) Validate() error {
	if len(d.Encodings) != len(d.Names) {
		return ErrMisaligned
	}
	return nil
}

// CountByName returns how many encodings each name has
func (d *Dataset) CountByName() map[string]int {
	result := make(map[string]int)
	for _, name := range d.Names {
		result[name]++
	}
	return result
}
