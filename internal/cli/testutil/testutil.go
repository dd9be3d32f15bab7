package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mark-chris/prodcat/internal/catalog"
)

// TestFixture holds test resources
type TestFixture struct {
	Dir      string            // Temporary directory containing the seed file
	SeedFile string            // Path of the seed YAML file
	DataDir  string            // Empty directory for a file store
	Products []catalog.Product // Products written to the seed file
}

// SetupTestCatalog creates a temporary seed file with 3 test products and an
// empty data directory.
func SetupTestCatalog(t *testing.T) *TestFixture {
	t.Helper()

	tmpDir := t.TempDir()

	products := []catalog.Product{
		CreateTestProduct("A1", "Plafon de embutir LED 12W branco", "plafon", "led"),
		CreateTestProduct("B2", "Pendente decorativo dourado", "pendente"),
		CreateTestProduct("C3", "Arandela de alumínio para área externa", "arandela", "aluminio", "externa"),
	}

	seedFile := filepath.Join(tmpDir, "seed.yaml")
	if err := writeSeedFile(seedFile, products); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}

	dataDir := filepath.Join(tmpDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("Failed to create data directory: %v", err)
	}

	return &TestFixture{
		Dir:      tmpDir,
		SeedFile: seedFile,
		DataDir:  dataDir,
		Products: products,
	}
}

// CreateTestProduct generates a minimal valid product
func CreateTestProduct(code, description string, keywords ...string) catalog.Product {
	return catalog.Product{
		Code:        code,
		Description: description,
		Keywords:    catalog.Tags(keywords...),
	}
}

// writeSeedFile writes products under a top-level products key
func writeSeedFile(path string, products []catalog.Product) error {
	data, err := yaml.Marshal(catalog.ProductFile{Products: products})
	if err != nil {
		return err
	}
	// #nosec G306 -- Test files don't need restrictive permissions
	return os.WriteFile(path, data, 0644)
}
