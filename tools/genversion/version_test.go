package genversion_test

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"testing"

	"github.com/MobRulesGames/isomap/tools/genversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedFileIsFormatted(t *testing.T) {
	buf := &bytes.Buffer{}
	err := genversion.GenFile("c0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ff", buf)
	require.NoError(t, err)

	formatted, err := format.Source(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(formatted))
	assert.Contains(t, buf.String(), `return "c0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ff"`)
}

func givenAGitDir(t *testing.T, head string) string {
	dir := filepath.Join(t.TempDir(), ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "refs", "heads"), 0o755))
	headPath := filepath.Join(dir, "HEAD")
	require.NoError(t, os.WriteFile(headPath, []byte(head), 0o644))
	return headPath
}

func TestReadCommitHash(t *testing.T) {
	t.Run("detached", func(t *testing.T) {
		headPath := givenAGitDir(t, "c0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ff\n")
		hash, err := genversion.ReadCommitHash(headPath)
		require.NoError(t, err)
		assert.Equal(t, "c0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ff", hash)
	})

	t.Run("on a branch", func(t *testing.T) {
		headPath := givenAGitDir(t, "ref: refs/heads/main\n")
		ref := filepath.Join(filepath.Dir(headPath), "refs", "heads", "main")
		require.NoError(t, os.WriteFile(ref, []byte("deadbeefdeadbeefdeadbeefdeadbeefdeadbeef\n"), 0o644))

		hash, err := genversion.ReadCommitHash(headPath)
		require.NoError(t, err)
		assert.Equal(t, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", hash)
	})

	t.Run("dangling ref", func(t *testing.T) {
		headPath := givenAGitDir(t, "ref: refs/heads/gone\n")
		_, err := genversion.ReadCommitHash(headPath)
		assert.Error(t, err)
	})
}
