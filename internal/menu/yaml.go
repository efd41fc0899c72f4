package menu

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type itemsFile struct {
	Items []Item `yaml:"items"`
}

// LoadItems reads an items document:
//
//	items:
//	  - title: Home
//	    icon: "⌂"
//	    destination: home
//
// A missing destination is derived from the title.
func LoadItems(r io.Reader) ([]Item, error) {
	var f itemsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode items: %w", err)
	}
	seen := make(map[string]bool, len(f.Items))
	for i := range f.Items {
		it := &f.Items[i]
		it.Title = strings.TrimSpace(it.Title)
		if it.Title == "" {
			return nil, fmt.Errorf("item %d: title required", i)
		}
		if it.Destination == "" {
			it.Destination = Slug(it.Title)
		}
		if seen[it.Destination] {
			return nil, fmt.Errorf("item %d: duplicate destination %q", i, it.Destination)
		}
		seen[it.Destination] = true
	}
	return f.Items, nil
}

// WriteItems encodes items in the format LoadItems reads.
func WriteItems(w io.Writer, items []Item) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(itemsFile{Items: items}); err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return enc.Close()
}

// Slug lowercases s and joins its words with dashes.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
