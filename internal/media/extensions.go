package media

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// ExtensionSets holds the extension lists for each class. Entries may be given
// in any case, with or without the leading dot.
type ExtensionSets struct {
	Raw    []string
	Raster []string
	Video  []string
}

// DefaultExtensionSets returns the built-in extension lists.
func DefaultExtensionSets() ExtensionSets {
	return ExtensionSets{
		Raw: []string{
			".arw", // Sony
			".nef", // Nikon
			".cr2", // Canon
			".cr3",
			".raf", // Fujifilm
			".orf", // Olympus
			".dng", // Leica, Adobe digital negative
			".rw2", // Panasonic
			".pef", // Pentax
			".srw", // Samsung
		},
		Raster: []string{".jpg", ".jpeg", ".png", ".heic", ".heif", ".tif", ".tiff", ".gif", ".webp", ".bmp"},
		Video:  []string{".mov", ".mp4", ".m4v", ".avi", ".mts", ".m2ts", ".mkv", ".3gp"},
	}
}

// NormalizeExtension returns ext uppercased with a single leading dot. An empty
// or dot-only value normalizes to "".
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + upper.String(ext)
}

// Classifier maps file paths to classes. It is safe for concurrent use.
type Classifier struct {
	byExt   map[string]Class
	sniffer Sniffer
}

// ClassifierOption customizes a Classifier.
type ClassifierOption func(*Classifier)

// WithSniffer enables content sniffing for files without an extension.
func WithSniffer(s Sniffer) ClassifierOption {
	return func(c *Classifier) {
		c.sniffer = s
	}
}

// NewClassifier builds a classifier from the given sets. An extension listed in
// more than one set is rejected so that every file maps to at most one class.
func NewClassifier(sets ExtensionSets, opts ...ClassifierOption) (*Classifier, error) {
	c := &Classifier{byExt: make(map[string]Class)}
	groups := []struct {
		class Class
		exts  []string
	}{
		{Raw, sets.Raw},
		{Raster, sets.Raster},
		{Video, sets.Video},
	}
	for _, group := range groups {
		for _, raw := range group.exts {
			ext := NormalizeExtension(raw)
			if ext == "" {
				continue
			}
			if existing, ok := c.byExt[ext]; ok && existing != group.class {
				return nil, fmt.Errorf("extension %s listed as both %s and %s", ext, existing, group.class)
			}
			c.byExt[ext] = group.class
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ClassOf returns the class for a normalized or raw extension.
func (c *Classifier) ClassOf(ext string) Class {
	if class, ok := c.byExt[NormalizeExtension(ext)]; ok {
		return class
	}
	return Unclassified
}

// Classify builds the File for path. Only extension-less files are sniffed,
// and only when a sniffer was configured.
func (c *Classifier) Classify(path string) File {
	ext := NormalizeExtension(filepath.Ext(path))
	file := File{Path: path, Ext: ext, Class: c.ClassOf(ext)}
	if ext != "" || c.sniffer == nil {
		return file
	}
	sniffed, ok := c.sniffer.Sniff(path)
	if !ok {
		return file
	}
	sniffed = NormalizeExtension(sniffed)
	if class := c.ClassOf(sniffed); class != Unclassified {
		file.Ext = sniffed
		file.Class = class
		file.Sniffed = true
	}
	return file
}

// Extensions returns the sorted normalized extensions registered for class.
func (c *Classifier) Extensions(class Class) []string {
	out := make([]string, 0, len(c.byExt))
	for ext, cl := range c.byExt {
		if cl == class {
			out = append(out, ext)
		}
	}
	sort.Strings(out)
	return out
}
