package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const missingKey = `from sqlmodel import SQLModel


class Todo(SQLModel, table=True):
    title: str
`

const danglingForeignKey = `from sqlmodel import Field, SQLModel


class Todo(SQLModel, table=True):
    id: int | None = Field(default=None, primary_key=True)
    owner_id: int = Field(foreign_key="ghost.id")
`

func TestRun_Usage(t *testing.T) {
	code, stdout, _ := execute(t)

	assert.Equal(t, 1, code)
	assert.Equal(t,
		"Usage: modelcheck <path>\n  path: Python file or directory containing SQLModel definitions\n",
		stdout)
}

func TestRun_PathNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	code, stdout, stderr := execute(t, missing)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: Path not found: "+missing+"\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_ExitStatus(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantCode int
		wantOut  []string
	}{
		{
			name:     "missing primary key",
			source:   missingKey,
			wantCode: 1,
			wantOut:  []string{"ERROR: ", ":4 - Table model 'Todo' has no primary key", "Found 1 error(s) and 0 warning(s)"},
		},
		{
			name:     "unknown foreign key",
			source:   danglingForeignKey,
			wantCode: 0,
			wantOut:  []string{"WARNING: ", "Foreign key 'owner_id' references unknown table 'ghost'", "Found 0 error(s) and 1 warning(s)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), "models.py"), tt.source)

			code, stdout, _ := execute(t, path)

			assert.Equal(t, tt.wantCode, code)
			for _, want := range tt.wantOut {
				assert.Contains(t, stdout, want)
			}
			assert.NotContains(t, stdout, "No issues found")
		})
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	code, stdout, _ := execute(t, t.TempDir())

	assert.Equal(t, 0, code)
	assert.Equal(t, "✓ No issues found\n\nFound 0 error(s) and 0 warning(s)\n", stdout)
}

func TestRun_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "models.py"), missingKey)

	code, stdout, _ := execute(t, dir, "--format", "json")

	assert.Equal(t, 1, code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, float64(1), doc["errors"])
	assert.Equal(t, float64(1), doc["files"])
}

func TestRun_InvalidFormat(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "models.py"), missingKey)

	code, stdout, stderr := execute(t, path, "--format", "xml")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unknown output format")
}

func TestRun_TooManyArguments(t *testing.T) {
	code, _, stderr := execute(t, "a.py", "b.py")

	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr)
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	src := `from app.db import Base, Column


class Todo(Base, table=True):
    title: str = Column()
`
	path := writeFile(t, filepath.Join(dir, "models.py"), src)

	code, stdout, _ := execute(t, path)
	assert.Equal(t, 0, code, "Base is not a model marker by default")
	assert.True(t, strings.HasPrefix(stdout, "✓ No issues found"))

	cfgPath := writeFile(t, filepath.Join(dir, "modelcheck.yaml"), "base_classes: [Base]\nfield_constructors: [Column]\n")

	code, stdout, _ = execute(t, path, "--config", cfgPath)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Table model 'Todo' has no primary key")

	bad := writeFile(t, filepath.Join(dir, "bad.yaml"), "extensions: [py]\n")
	code, _, stderr := execute(t, path, "--config", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "extensions")
}

func TestRun_Verbose(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "models.py"), danglingForeignKey)

	_, _, stderr := execute(t, path)
	assert.Empty(t, stderr)

	_, _, stderr = execute(t, path, "-v")
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "parsed unit")
}

func TestRun_DirectoryNamedMCP(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, filepath.Join("mcp", "models.py"), missingKey)

	code, stdout, _ := execute(t, "./mcp")

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Table model 'Todo' has no primary key")
	assert.Contains(t, newRootCmd().Long, "./mcp")
}
