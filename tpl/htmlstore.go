package tpl

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const FileSuffix = ".gohtml"

type HTMLTemplateStore struct {
	Base     map[string]*template.Template // each file → one template
	Combined map[string]*template.Template // composed templates (layout + page)

	sources map[string]string // raw file contents, for composing
}

func NewHTMLTemplateStore() *HTMLTemplateStore {
	return &HTMLTemplateStore{
		Base:     make(map[string]*template.Template),
		Combined: make(map[string]*template.Template),
		sources:  make(map[string]string),
	}
}

func (s *HTMLTemplateStore) LoadBaseTemplates(tplRoot string) error {
	// Normalize the root dir to avoid trailing slash issues
	tplRoot = filepath.Clean(tplRoot)
	err := filepath.WalkDir( // Pre-order Depth-first Traversal
		tplRoot,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			// Skip Hidden Files & Hidden Directories
			if strings.HasPrefix(name, ".") {
				if d.IsDir() {
					// Hidden Directory
					return fs.SkipDir // skip the whole directory: Do NOT walk into this directory
				}
				// Hidden File
				return nil // skip the file
			}
			if d.IsDir() {
				// Regular Directory
				return nil // just walk into it
			}
			if !strings.HasSuffix(path, FileSuffix) {
				return nil
			}
			// Read file
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			// UTF-8 validation
			if !utf8.Valid(data) {
				return fmt.Errorf("file %s is not valid UTF-8", path)
			}
			// compute template key: relative path to the template root without extension
			rel, _ := filepath.Rel(tplRoot, path)
			key := strings.TrimSuffix(filepath.ToSlash(rel), FileSuffix)
			// detect duplicate
			if _, exists := s.Base[key]; exists {
				return fmt.Errorf("duplicate template key detected: %s (file=%s)", key, path)
			}
			// Parse a New Template from the file content
			t := template.New(key)
			t, err = t.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse error in %s: %w", path, err)
			}
			s.Base[key] = t
			s.sources[key] = string(data)
			return nil
		},
	)
	if err != nil {
		return err
	}
	// Summary log
	log.Printf("[INFO][TEMPLATE] Loaded %d templates from %s", len(s.Base), tplRoot)
	return nil
}

// Combine composes a page template into a layout and stores the result under
// key. The layout refers to the page body via {{template "content" .}}.
func (s *HTMLTemplateStore) Combine(key string, layoutKey string, pageKeys ...string) error {
	layoutSrc, ok := s.sources[layoutKey]
	if !ok {
		return fmt.Errorf("layout template not loaded: %s", layoutKey)
	}
	t, err := template.New(key).Parse(layoutSrc)
	if err != nil {
		return fmt.Errorf("parse error in layout %s: %w", layoutKey, err)
	}
	for _, pageKey := range pageKeys {
		pageSrc, ok := s.sources[pageKey]
		if !ok {
			return fmt.Errorf("page template not loaded: %s", pageKey)
		}
		if t, err = t.Parse(pageSrc); err != nil {
			return fmt.Errorf("parse error in page %s: %w", pageKey, err)
		}
	}
	s.Combined[key] = t
	return nil
}

// Render executes a combined template, falling back to a base template of
// the same key
func (s *HTMLTemplateStore) Render(w io.Writer, key string, data any) error {
	if t, ok := s.Combined[key]; ok {
		return t.Execute(w, data)
	}
	if t, ok := s.Base[key]; ok {
		return t.Execute(w, data)
	}
	return fmt.Errorf("template not found: %s", key)
}
