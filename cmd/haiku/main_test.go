package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLexicon = `cat | NOUN
ran | VERB
red | ADJECTIVE
fast | ADVERB
by | PREPOSITION
the | ARTICLE
silence | NOUN
`

func writeLexicon(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, os.WriteFile(path, []byte(testLexicon), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	path := writeLexicon(t)
	out, err := run(t, "generate", "--lexicon", path, "--count", "2", "--seed", "11")
	require.NoError(t, err)

	poems := strings.Split(strings.TrimSpace(out), "\n\n")
	require.Len(t, poems, 2)
	for _, p := range poems {
		assert.Len(t, strings.Split(p, "\n"), 3)
	}

	again, err := run(t, "generate", "--lexicon", path, "--count", "2", "--seed", "11")
	require.NoError(t, err)
	assert.Equal(t, out, again, "same seed, same poems")
}

func TestGenerateErrors(t *testing.T) {
	_, err := run(t, "generate", "--lexicon", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "lexicon load failed")

	_, err = run(t, "generate", "--lexicon", writeLexicon(t), "--count", "0")
	assert.ErrorContains(t, err, "--count")
}

func TestSyllables(t *testing.T) {
	out, err := run(t, "syllables", "cat", "beauty", "haiku")
	require.NoError(t, err)
	assert.Equal(t, "cat\t1\nbeauty\t2\nhaiku\t2\n", out)

	_, err = run(t, "syllables")
	assert.Error(t, err)
}

func TestLexiconList(t *testing.T) {
	path := writeLexicon(t)

	out, err := run(t, "lexicon", "list", "--lexicon", path, "--pos", "noun")
	require.NoError(t, err)
	assert.Equal(t, "cat\tNOUN\t1\nsilence\tNOUN\t2\n", out)

	out, err = run(t, "lexicon", "list", "--lexicon", path, "--min", "2")
	require.NoError(t, err)
	assert.Equal(t, "silence\tNOUN\t2\n", out)

	_, err = run(t, "lexicon", "list", "--lexicon", path, "--pos", "blank")
	assert.ErrorContains(t, err, "unknown part of speech")
}

func TestLexiconAdd(t *testing.T) {
	path := writeLexicon(t)
	out, err := run(t, "lexicon", "add", "--lexicon", path, "autumn", "noun")
	require.NoError(t, err)
	assert.Equal(t, "autumn\tNOUN\t2\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "autumn | NOUN\n")
	assert.Contains(t, string(data), "the | ARTICLE\n")

	_, err = run(t, "lexicon", "add", "--lexicon", path, "autumn", "BLANK")
	assert.ErrorContains(t, err, "unknown part of speech")
}

func TestLexiconAddCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	_, err := run(t, "lexicon", "add", "--lexicon", path, "moon", "NOUN")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "moon | NOUN\n", string(data))
}

func TestLexiconStats(t *testing.T) {
	out, err := run(t, "lexicon", "stats", "--lexicon", writeLexicon(t))
	require.NoError(t, err)
	assert.Equal(t, "NOUN\t2\nVERB\t1\nADJECTIVE\t1\nADVERB\t1\nPREPOSITION\t1\nARTICLE\t1\nTOTAL\t7\n", out)
}

func TestConfigFile(t *testing.T) {
	path := writeLexicon(t)
	cfgPath := filepath.Join(t.TempDir(), "haiku.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("lexicon: "+path+"\nseed: 5\n"), 0o644))

	first, err := run(t, "generate", "--config", cfgPath)
	require.NoError(t, err)
	second, err := run(t, "generate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = run(t, "generate", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}
