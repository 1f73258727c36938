package config

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var packageClause = regexp.MustCompile(`(?m)^package `)

func TestPackageSources(t *testing.T) {
	paths, err := filepath.Glob("*.go")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			src, err := os.ReadFile(path)
			require.NoError(t, err)

			file, err := parser.ParseFile(token.NewFileSet(), path, src, parser.ParseComments)
			require.NoError(t, err, "source should parse")

			assert.Contains(t, []string{"config", "config_test"}, file.Name.Name)
			assert.Len(t, packageClause.FindAllIndex(src, -1), 1, "exactly one package clause")

			if path == "doc.go" {
				require.NotNil(t, file.Doc, "doc.go should carry the package doc")
				assert.Contains(t, file.Doc.Text(), "Package config")
			} else {
				assert.Nil(t, file.Doc, "only doc.go should document the package")
			}
		})
	}
}
