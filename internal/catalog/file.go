package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileAuthor struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Bio  string `yaml:"bio"`
}

type fileEvent struct {
	Date   string `yaml:"date"`
	Event  string `yaml:"event"`
	Author string `yaml:"author"`
}

type fileDocument struct {
	Authors []fileAuthor `yaml:"authors"`
	Events  []fileEvent  `yaml:"events"`
}

// LoadFile reads a YAML catalog:
//
//	authors:
//	  - {key: chomsky, name: Ноам Хомский, bio: ...}
//	events:
//	  - {date: 1953-08-19, event: ..., author: chomsky}
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}

	authors := make([]Author, 0, len(doc.Authors))
	for _, a := range doc.Authors {
		authors = append(authors, Author{Key: a.Key, Name: a.Name, Bio: a.Bio})
	}
	events := make([]Event, 0, len(doc.Events))
	for _, e := range doc.Events {
		d, err := ParseDate(e.Date)
		if err != nil {
			return nil, err
		}
		events = append(events, Event{Date: d, Description: e.Event, AuthorKey: e.Author})
	}
	return New(authors, events)
}
