package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProductFile is the layout of a seed YAML file: a single "product" entry,
// a "products" list, or both.
type ProductFile struct {
	Product  *Product  `yaml:"product,omitempty"`
	Products []Product `yaml:"products,omitempty"`
}

// Loader handles loading seed products from the filesystem
type Loader struct {
	basePath string
}

// NewLoader creates a new product loader with the given base path
func NewLoader(basePath string) *Loader {
	return &Loader{basePath: basePath}
}

// LoadAll loads every product found in YAML files under the base path
func (l *Loader) LoadAll() ([]Product, error) {
	var products []Product

	err := filepath.Walk(l.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-YAML files
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		loaded, err := l.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		products = append(products, loaded...)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk products directory: %w", err)
	}

	return products, nil
}

// LoadFile loads the products declared in a single YAML file
func (l *Loader) LoadFile(path string) ([]Product, error) {
	// Validate path to prevent directory traversal attacks
	if err := l.validatePath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file ProductFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var products []Product
	if file.Product != nil {
		products = append(products, *file.Product)
	}
	products = append(products, file.Products...)
	return products, nil
}

// validatePath ensures the given path is within the loader's basePath
// and prevents directory traversal attacks
func (l *Loader) validatePath(path string) error {
	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	cleanBase, err := filepath.Abs(filepath.Clean(l.basePath))
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	relPath, err := filepath.Rel(cleanBase, cleanPath)
	if err != nil {
		return fmt.Errorf("failed to compute relative path: %w", err)
	}

	// If the relative path starts with "..", it's outside the base path
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) || filepath.IsAbs(relPath) {
		return fmt.Errorf("path traversal detected: %s is outside base path %s", path, l.basePath)
	}

	return nil
}
