// Package assemble builds the output config document from a static head,
// an ordered sequence of module fragments, an optional pages section, and
// a static tail. Assembly is deterministic: identical inputs produce
// byte-identical output, and module order is exactly the plan's order
// because rendering order is significant downstream.
package assemble

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"mirrorctl/internal/fragment"
)

// MissingResourceError reports a referenced fragment, head, tail, or pages
// file that does not exist. It is fatal to the current transaction.
type MissingResourceError struct {
	Path string
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("missing resource: %s", e.Path)
}

// Plan describes one assembly: which modules, in which order, and whether
// the pages section is active.
type Plan struct {
	Modules []string
	// UsePages appends the pages template after the last module.
	UsePages bool
	// PagesModule is substituted for the placeholder token inside the
	// pages template. Empty means no substitution.
	PagesModule string
}

// Assembler concatenates head, fragments, and tail into one document.
type Assembler struct {
	Store     *fragment.Store
	HeadPath  string
	TailPath  string
	PagesPath string
	// Indent is prepended to every fragment.
	Indent string
	// Placeholder is the token replaced by Plan.PagesModule in the pages
	// template.
	Placeholder string
}

// Assemble produces the output document for the plan. Any absent resource
// yields a MissingResourceError carrying the missing path.
func (a *Assembler) Assemble(plan Plan) ([]byte, error) {
	head, err := readResource(a.HeadPath)
	if err != nil {
		return nil, err
	}
	tail, err := readResource(a.TailPath)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(head)

	for i, module := range plan.Modules {
		content, err := a.Store.Read(module)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &MissingResourceError{Path: a.Store.Path(module)}
			}
			return nil, err
		}

		content = strings.TrimRight(content, " \t\r\n")
		// Strip exactly one trailing comma; separators are re-added below
		// so every fragment ends up punctuated consistently.
		content = strings.TrimSuffix(content, ",")

		b.WriteString(a.Indent)
		b.WriteString(content)
		if i < len(plan.Modules)-1 || plan.UsePages {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	if plan.UsePages {
		pages, err := readResource(a.PagesPath)
		if err != nil {
			return nil, err
		}
		if plan.PagesModule != "" {
			pages = strings.ReplaceAll(pages, a.Placeholder, plan.PagesModule)
		}
		b.WriteString(pages)
	}

	b.WriteString(tail)
	return []byte(b.String()), nil
}

func readResource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingResourceError{Path: path}
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
