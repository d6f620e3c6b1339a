// Package scaffolding creates the project directory skeleton and renders
// the configuration files that make up a generated project.
package scaffolding

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ddddddO/gtree"
)

// Tree describes a directory structure as a mapping of directory names to
// subtrees. An empty subtree creates an empty directory.
type Tree map[string]Tree

// ProjectTree returns the directory skeleton for a new project.
func ProjectTree(name string) Tree {
	return Tree{
		name: {
			// docker-compose.yml
			// .gitignore
			// README.md
			"configuration": {
				"nginx": {
					"conf.d": {
						// default.conf
						// utils.conf
					},
					"ssl": {
						// key.pem
						// certificate.pem
					},
				},
				"supervisor": {
					"conf.d": {
						// supervisord.conf
					},
				},
			},
			"docker-compose": {
				"services": {
					"php": {
						// Dockerfile
					},
				},
			},
			"application": {
				// Laravel application
			},
		},
	}
}

// Validate reports whether every node of the tree maps to a subtree. A nil
// subtree is treated as an empty directory.
func (t Tree) Validate() error {
	for name, inner := range t {
		if name == "" {
			return fmt.Errorf("directory name cannot be empty")
		}
		if filepath.Base(name) != name {
			return fmt.Errorf("directory name %q must not contain path separators", name)
		}
		if inner != nil {
			if err := inner.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Create materializes the tree under base. Directories are created level by
// level; a pre-existing top-level directory is an error.
func (t Tree) Create(base string) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid directory structure: %w", err)
	}
	return t.create(base)
}

func (t Tree) create(base string) error {
	for name, inner := range t {
		dir := filepath.Join(base, name)
		if err := os.Mkdir(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		if inner != nil {
			if err := inner.create(dir); err != nil {
				return err
			}
		}
	}
	return nil
}

// Render writes the tree to w in the usual tree(1) shape. Entries are
// ordered lexicographically so output is stable.
func (t Tree) Render(w io.Writer) error {
	names := sortedKeys(t)
	for _, name := range names {
		root := gtree.NewRoot(name + "/")
		addNodes(root, t[name])
		if err := gtree.OutputProgrammably(w, root); err != nil {
			return fmt.Errorf("failed to render directory tree: %w", err)
		}
	}
	return nil
}

func addNodes(parent *gtree.Node, t Tree) {
	for _, name := range sortedKeys(t) {
		node := parent.Add(name + "/")
		addNodes(node, t[name])
	}
}

func sortedKeys(t Tree) []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
