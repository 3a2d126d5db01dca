package content

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidPath   = errors.New("invalid path")
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// DefaultSectionOrder is the canonical display order of known sections.
var DefaultSectionOrder = []string{"overview", "products", "infrastructure", "protocol", "research"}

// Loader reads a content tree of one directory per section, each holding
// markdown documents.
type Loader struct {
	fs             afero.Fs
	root           string
	sectionOrder   []string
	skipUnreadable bool
	log            *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithSectionOrder replaces the canonical section order.
func WithSectionOrder(slugs []string) Option {
	return func(l *Loader) {
		l.sectionOrder = slices.Clone(slugs)
	}
}

// WithSkipUnreadable makes the loader skip documents that cannot be read
// and log a warning, instead of failing the whole load.
func WithSkipUnreadable(log *slog.Logger) Option {
	return func(l *Loader) {
		l.skipUnreadable = true
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a loader rooted at root on fsys.
func NewLoader(fsys afero.Fs, root string, opts ...Option) *Loader {
	l := &Loader{
		fs:           fsys,
		root:         root,
		sectionOrder: DefaultSectionOrder,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the content root directory.
func (l *Loader) Root() string {
	return l.root
}

type sectionDir struct {
	slug  string
	order int
}

// LoadSectionGroups reads every section directory under the root and
// returns the sections in display order with their documents sorted.
func (l *Loader) LoadSectionGroups(ctx context.Context) ([]doctree.Section, error) {
	dirs, err := l.listSectionDirectories()
	if err != nil {
		return nil, err
	}

	sections := make([]doctree.Section, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	for i, dir := range dirs {
		g.Go(func() error {
			docs, err := l.listSectionDocs(gctx, dir.slug)
			if err != nil {
				return err
			}
			sections[i] = doctree.Section{
				Title: HumanizeSlug(dir.slug),
				Slug:  dir.slug,
				Order: dir.order,
				Docs:  docs,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(sections, func(a, b doctree.Section) int {
		return byOrderThenSlug(a.Order, b.Order, a.Slug, b.Slug)
	})
	return sections, nil
}

// ReadSectionMarkdown reads a markdown file from the root, or from the
// section directory when sectionSlug is set. The ".md" extension is added
// when fileName lacks it, compared case-insensitively.
func (l *Loader) ReadSectionMarkdown(ctx context.Context, fileName, sectionSlug string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateName(fileName); err != nil {
		return "", err
	}
	base := l.root
	if sectionSlug != "" {
		if err := validateName(sectionSlug); err != nil {
			return "", err
		}
		base = filepath.Join(base, sectionSlug)
	}
	name := fileName
	if !isMarkdownFile(name) {
		name += ".md"
	}
	path := filepath.Join(base, name)

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (l *Loader) listSectionDirectories() ([]sectionDir, error) {
	entries, err := afero.ReadDir(l.fs, l.root)
	if err != nil {
		return nil, fmt.Errorf("list sections in %s: %w", l.root, err)
	}

	var dirs []sectionDir
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		order := slices.Index(l.sectionOrder, e.Name())
		if order == -1 {
			order = MaxOrder
		}
		dirs = append(dirs, sectionDir{slug: e.Name(), order: order})
	}
	return dirs, nil
}

func (l *Loader) listSectionDocs(ctx context.Context, sectionSlug string) ([]doctree.Document, error) {
	dir := filepath.Join(l.root, sectionSlug)
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Mode().IsRegular() && isMarkdownFile(e.Name()) {
			names = append(names, e.Name())
		}
	}

	docs := make([]*doctree.Document, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			doc, err := l.readDoc(gctx, sectionSlug, name)
			if err != nil {
				if l.skipUnreadable && gctx.Err() == nil {
					l.log.Warn("skipping unreadable document",
						"section", sectionSlug,
						"file", name,
						"error", err,
					)
					return nil
				}
				return err
			}
			docs[i] = &doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]doctree.Document, 0, len(docs))
	seen := make(map[string]string, len(docs))
	for _, d := range docs {
		if d == nil {
			continue
		}
		if prev, ok := seen[d.Slug]; ok {
			return nil, fmt.Errorf("%w: %q in section %q (%s, %s)", ErrDuplicateSlug, d.Slug, sectionSlug, prev, d.FileName)
		}
		seen[d.Slug] = d.FileName
		out = append(out, *d)
	}

	slices.SortStableFunc(out, func(a, b doctree.Document) int {
		return byOrderThenSlug(a.Order, b.Order, a.Slug, b.Slug)
	})
	return out, nil
}

func (l *Loader) readDoc(ctx context.Context, sectionSlug, fileName string) (doctree.Document, error) {
	slug, order := ParseSlug(fileName)
	if isReadme(slug) {
		slug = sectionSlug
	}

	raw, err := l.ReadSectionMarkdown(ctx, fileName, sectionSlug)
	if err != nil {
		return doctree.Document{}, err
	}

	return doctree.Document{
		Title:    documentTitle(raw, slug),
		Slug:     slug,
		Content:  raw,
		FileName: fileName,
		Order:    order,
	}, nil
}

func byOrderThenSlug(orderA, orderB int, slugA, slugB string) int {
	if c := cmp.Compare(orderA, orderB); c != 0 {
		return c
	}
	return strings.Compare(slugA, slugB)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return nil
}
