package path

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	templatesSubdir = "templates"
	templateFile    = "template.xlsx"
)

// Builder of uploads and tmp paths.
type Builder struct {
	templatesDir string
	tmpDir       string
	uuidFunc     func() string
}

// NewBuilder creates the templates directory under uploadsDir if it
// does not exist yet.
func NewBuilder(
	uploadsDir string,
	tmpDir string,
	uuidFunc func() string,
) (*Builder, error) {
	templatesDir := filepath.Join(uploadsDir, templatesSubdir)
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %s", templatesDir, err)
	}
	if _, err := os.Stat(tmpDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("path %s is not exist", tmpDir)
	}

	return &Builder{
		templatesDir: templatesDir,
		tmpDir:       tmpDir,
		uuidFunc:     uuidFunc,
	}, nil
}

// Template returns the path of the fixed server-side template.
func (b *Builder) Template() string {
	return filepath.Join(b.templatesDir, templateFile)
}

// TemplatesDir returns the directory uploaded templates live in.
func (b *Builder) TemplatesDir() string {
	return b.templatesDir
}

// Upload returns the final path of an uploaded template by name.
func (b *Builder) Upload(name string) string {
	return filepath.Join(b.templatesDir, name)
}

// TmpFile returns path to tmp file by name.
func (b *Builder) TmpFile(name string) string {
	return filepath.Join(b.tmpDir, b.uuidFunc()+name)
}
