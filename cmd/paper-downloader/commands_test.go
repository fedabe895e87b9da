package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ytget/paper-downloader/internal/selection"
)

const testCatalog = `{
  "10th": {
    "english": {
      "Science": {
        "2022": {"url": "papers/science_2022.pdf", "fileSize": "1.5 MB", "pages": 14},
        "2021": {"url": "papers/science_2021.pdf"},
        "2020": {"url": "#"}
      }
    }
  }
}`

func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "papers"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "papers.json"), []byte(testCatalog), 0o644))
	for _, name := range []string{"science_2022.pdf", "science_2021.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, "papers", name), []byte("%PDF "+name), 0o644))
	}
	return filepath.Join(root, "papers.json")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&options{logger: zap.NewNop()})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSubjects(t *testing.T) {
	out, _, err := run(t, "subjects", "--class", "12th")
	require.NoError(t, err)
	assert.Equal(t, "Hindi\nEnglish\nPhysics\nChemistry\nMath\nBiology\n", out)

	_, _, err = run(t, "subjects", "--class", "11th")
	assert.ErrorIs(t, err, selection.ErrUnknownClass)
}

func TestList(t *testing.T) {
	source := writeSite(t)

	out, stderr, err := run(t, "list", "--catalog", source, "--subject", "Science")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, out, "10th | English Medium | Science")
	assert.Contains(t, out, "1.5 MB, 14 pages")
	assert.Contains(t, out, "10th_Science_2020.pdf (not available yet)")
}

func TestList_PromptWithoutSubject(t *testing.T) {
	out, _, err := run(t, "list", "--catalog", writeSite(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Select a subject to view question papers")
}

func TestList_RejectsSubjectOutsideClass(t *testing.T) {
	_, _, err := run(t, "list", "--catalog", writeSite(t), "--subject", "Physics")
	assert.ErrorIs(t, err, selection.ErrSubjectUnavailable)
}

func TestList_FallbackCatalog(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "papers.json")

	out, stderr, err := run(t, "list", "--catalog", missing, "--subject", "Hindi")
	require.NoError(t, err)
	assert.Contains(t, stderr, "showing built-in papers")
	assert.Contains(t, out, "2022 Hindi")
	assert.Contains(t, out, "2021 Hindi")
}

func TestFetch(t *testing.T) {
	source := writeSite(t)
	dir := t.TempDir()

	out, stderr, err := run(t, "fetch", "--catalog", source, "--subject", "Science", "--dir", dir, "-p", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Science 2020 is not available yet")
	assert.Contains(t, out, "2 saved, 1 skipped, 0 failed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"10th_Science_2021.pdf", "10th_Science_2022.pdf"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "10th_Science_2022.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF science_2022.pdf", string(data))
}

func TestFetch_SingleYear(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, "fetch", "--catalog", writeSite(t), "--subject", "Science", "--year", "2021", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 saved, 0 skipped, 0 failed")
	assert.FileExists(t, filepath.Join(dir, "10th_Science_2021.pdf"))
	assert.NoFileExists(t, filepath.Join(dir, "10th_Science_2022.pdf"))
}

func TestFetch_NoPapers(t *testing.T) {
	_, _, err := run(t, "fetch", "--catalog", writeSite(t), "--subject", "Math", "--dir", t.TempDir())
	assert.ErrorIs(t, err, errNoPapers)

	_, _, err = run(t, "fetch", "--catalog", writeSite(t), "--subject", "Science", "--year", "1999", "--dir", t.TempDir())
	assert.ErrorIs(t, err, errNoPapers)
}

func TestFetch_MissingFileFails(t *testing.T) {
	source := writeSite(t)
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(source), "papers", "science_2021.pdf")))

	out, _, err := run(t, "fetch", "--catalog", source, "--subject", "Science", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10th_Science_2021.pdf")
	assert.Contains(t, out, "1 saved, 1 skipped, 1 failed")
}

func TestFetch_RequiresSubject(t *testing.T) {
	_, _, err := run(t, "fetch", "--catalog", writeSite(t))
	assert.Error(t, err)
}
