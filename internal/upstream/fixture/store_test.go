package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tenants.json", `{"data":[{"Name":"Ada","Amount":900,"Due Date":"2024-01-01"}]}`)
	writeFile(t, dir, "issues.json", `{"data":[{"ID":"1","Name":"Grace","Issues Type":"HVAC"}]}`)

	s, err := NewFromFiles(dir)
	require.NoError(t, err)

	tenants, err := s.Tenants(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "Ada", tenants[0].Name)

	issues, err := s.Issues(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "HVAC", issues[0].Category)
}

func TestNewFromFilesMissingFilesAreEmpty(t *testing.T) {
	s, err := NewFromFiles(t.TempDir())
	require.NoError(t, err)

	tenants, err := s.Tenants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tenants)

	issues, err := s.Issues(context.Background())
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestNewFromFilesBrokenFixtureFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tenants.json", `{"data": oops`)

	_, err := NewFromFiles(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse fixture")
}

func TestStoreReturnsCopies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tenants.json", `{"data":[{"Name":"Ada","Amount":900,"Due Date":"2024-01-01"}]}`)

	s, err := NewFromFiles(dir)
	require.NoError(t, err)

	first, _ := s.Tenants(context.Background())
	first[0].Name = "mutated"

	second, _ := s.Tenants(context.Background())
	assert.Equal(t, "Ada", second[0].Name)
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
