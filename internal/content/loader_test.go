package content

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/content/sections"

func newFixture(t *testing.T, files map[string]string, dirs ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(root, 0o755))
	for _, d := range dirs {
		require.NoError(t, fsys.MkdirAll(filepath.Join(root, d), 0o755))
	}
	for name, body := range files {
		path := filepath.Join(root, name)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(body), 0o644))
	}
	return fsys
}

func sampleTree(t *testing.T) afero.Fs {
	return newFixture(t, map[string]string{
		"research/papers.md":                "# Papers\n",
		"products/README.md":                "# Products Home\n",
		"products/2-dcap.md":                "## DCAP Verification\nQuote checks.",
		"products/1_intro.md":               "# Intro to TEEs\nTrusted execution.",
		"products/api-keys.md":              "no heading here",
		"products/notes.txt":                "ignored",
		"overview/01-welcome.md":            "# Welcome\n",
		"zeta/doc.md":                       "# Zeta\n",
		"alpha/doc.md":                      "# Alpha\n",
		"protocol/nested/deep.md":           "# Not loaded\n",
		"infrastructure/10-nodes.md":        "# Nodes\n",
		"infrastructure/9-clusters.md":      "# Clusters\n",
		"infrastructure/9-aaa-first-tie.md": "# Tie\n",
	}, "empty")
}

func TestLoadSectionGroups_SectionOrder(t *testing.T) {
	l := NewLoader(sampleTree(t), root)
	sections, err := l.LoadSectionGroups(context.Background())
	require.NoError(t, err)

	var slugs []string
	for _, s := range sections {
		slugs = append(slugs, s.Slug)
	}
	assert.Equal(t, []string{"overview", "products", "infrastructure", "protocol", "research", "alpha", "empty", "zeta"}, slugs)

	assert.Equal(t, 0, sections[0].Order)
	assert.Equal(t, "Overview", sections[0].Title)
	assert.Equal(t, MaxOrder, sections[5].Order)
	assert.Empty(t, sections[6].Docs)
	// Nested directories are not documents.
	assert.Empty(t, sections[3].Docs)
}

func TestLoadSectionGroups_DocumentOrderAndTitles(t *testing.T) {
	l := NewLoader(sampleTree(t), root)
	sections, err := l.LoadSectionGroups(context.Background())
	require.NoError(t, err)

	products := sections[1]
	require.Equal(t, "products", products.Slug)

	want := []doctree.Document{
		{Title: "Intro to TEEs", Slug: "intro", Content: "# Intro to TEEs\nTrusted execution.", FileName: "1_intro.md", Order: 1},
		{Title: "DCAP Verification", Slug: "dcap", Content: "## DCAP Verification\nQuote checks.", FileName: "2-dcap.md", Order: 2},
		{Title: "Api Keys", Slug: "api-keys", Content: "no heading here", FileName: "api-keys.md", Order: MaxOrder},
		{Title: "Products Home", Slug: "products", Content: "# Products Home\n", FileName: "README.md", Order: MaxOrder},
	}
	assert.Equal(t, want, products.Docs)

	infra := sections[2]
	var infraSlugs []string
	for _, d := range infra.Docs {
		infraSlugs = append(infraSlugs, d.Slug)
	}
	assert.Equal(t, []string{"aaa-first-tie", "clusters", "nodes"}, infraSlugs)
}

func TestLoadSectionGroups_ReadmeTakesSectionSlug(t *testing.T) {
	for _, name := range []string{"README.md", "readme.md", "ReadMe.MD", "00-readme.md"} {
		t.Run(name, func(t *testing.T) {
			fsys := newFixture(t, map[string]string{"products/" + name: "landing"})
			sections, err := NewLoader(fsys, root).LoadSectionGroups(context.Background())
			require.NoError(t, err)
			require.Len(t, sections, 1)
			require.Len(t, sections[0].Docs, 1)

			doc := sections[0].Docs[0]
			assert.Equal(t, "products", doc.Slug)
			assert.Equal(t, "Products", doc.Title)
			assert.Equal(t, name, doc.FileName)

			landing, ok := sections[0].Landing()
			assert.True(t, ok)
			assert.Equal(t, "landing", landing.Content)
		})
	}
}

func TestLoadSectionGroups_Deterministic(t *testing.T) {
	l := NewLoader(sampleTree(t), root)
	first, err := l.LoadSectionGroups(context.Background())
	require.NoError(t, err)
	for range 5 {
		again, err := l.LoadSectionGroups(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLoadSectionGroups_CustomSectionOrder(t *testing.T) {
	l := NewLoader(sampleTree(t), root, WithSectionOrder([]string{"zeta", "alpha"}))
	sections, err := l.LoadSectionGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "zeta", sections[0].Slug)
	assert.Equal(t, "alpha", sections[1].Slug)
	assert.Equal(t, "empty", sections[2].Slug)
}

func TestLoadSectionGroups_MissingRoot(t *testing.T) {
	l := NewLoader(afero.NewMemMapFs(), "/does/not/exist")
	sections, err := l.LoadSectionGroups(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, sections)
}

func TestLoadSectionGroups_DuplicateSlug(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"products/1-intro.md": "# One",
		"products/intro.md":   "# Two",
	})
	_, err := NewLoader(fsys, root).LoadSectionGroups(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSlug)
	assert.Contains(t, err.Error(), `"intro"`)
}

func TestLoadSectionGroups_ReadmeCollidesWithSectionSlug(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"products/README.md":   "# Landing",
		"products/products.md": "# Other",
	})
	_, err := NewLoader(fsys, root).LoadSectionGroups(context.Background())
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

// unreadableFs fails to open one file name with a permission error.
type unreadableFs struct {
	afero.Fs
	name string
}

func (f unreadableFs) Open(name string) (afero.File, error) {
	if filepath.Base(name) == f.name {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return f.Fs.Open(name)
}

func (f unreadableFs) OpenFile(name string, flag int, perm fs.FileMode) (afero.File, error) {
	if filepath.Base(name) == f.name {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestLoadSectionGroups_UnreadableFailsFast(t *testing.T) {
	fsys := unreadableFs{Fs: sampleTree(t), name: "2-dcap.md"}
	sections, err := NewLoader(fsys, root).LoadSectionGroups(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Nil(t, sections)
}

func TestLoadSectionGroups_UnreadableSkipped(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	fsys := unreadableFs{Fs: sampleTree(t), name: "2-dcap.md"}

	sections, err := NewLoader(fsys, root, WithSkipUnreadable(log)).LoadSectionGroups(context.Background())
	require.NoError(t, err)

	products := sections[1]
	_, ok := products.Doc("dcap")
	assert.False(t, ok)
	assert.Len(t, products.Docs, 3)
	assert.Contains(t, buf.String(), "skipping unreadable document")
	assert.Contains(t, buf.String(), "2-dcap.md")
}

func TestLoadSectionGroups_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(sampleTree(t), root, WithSkipUnreadable(nil)).LoadSectionGroups(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadSectionMarkdown(t *testing.T) {
	fsys := newFixture(t, map[string]string{
		"top.md":             "top level",
		"products/1-intro.md": "intro",
		"products/GUIDE.MD":   "guide",
	})
	l := NewLoader(fsys, root)
	ctx := context.Background()

	got, err := l.ReadSectionMarkdown(ctx, "top", "")
	require.NoError(t, err)
	assert.Equal(t, "top level", got)

	got, err = l.ReadSectionMarkdown(ctx, "1-intro.md", "products")
	require.NoError(t, err)
	assert.Equal(t, "intro", got)

	got, err = l.ReadSectionMarkdown(ctx, "1-intro", "products")
	require.NoError(t, err)
	assert.Equal(t, "intro", got)

	got, err = l.ReadSectionMarkdown(ctx, "GUIDE.MD", "products")
	require.NoError(t, err)
	assert.Equal(t, "guide", got)

	_, err = l.ReadSectionMarkdown(ctx, "missing", "products")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.ReadSectionMarkdown(ctx, "1-intro", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadSectionMarkdown_RejectsTraversal(t *testing.T) {
	l := NewLoader(newFixture(t, map[string]string{"products/a.md": "a"}), root)
	ctx := context.Background()

	for _, tc := range []struct{ file, section string }{
		{"../secret", "products"},
		{"a", ".."},
		{"..", "products"},
		{"", "products"},
		{`a\b`, "products"},
		{"a", "products/../products"},
	} {
		_, err := l.ReadSectionMarkdown(ctx, tc.file, tc.section)
		assert.ErrorIs(t, err, ErrInvalidPath, "%q in %q", tc.file, tc.section)
	}
}
