package scaffolding

import (
	"fmt"
	"os"
	"regexp"
)

// Block manipulates tagged regions of a generated file. A region looks like
//
//	<tag>
//	...lines...
//	</tag>
//
// Add unwraps the region (keeps the contents, drops the tag lines); Remove
// deletes the region entirely.
type Block struct {
	contents string
	regex    *regexp.Regexp
}

// NewBlock reads filename and prepares a block manipulator for tag.
func NewBlock(filename, tag string) (*Block, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return NewBlockFromString(string(data), tag), nil
}

// NewBlockFromString prepares a block manipulator for tag over contents.
func NewBlockFromString(contents, tag string) *Block {
	quoted := regexp.QuoteMeta(tag)
	regex := regexp.MustCompile(`(?s) *<` + quoted + `>\n(.*?) *</` + quoted + `>\n`)

	return &Block{
		contents: contents,
		regex:    regex,
	}
}

// Add replaces the tag markers with the block's contents.
func (b *Block) Add() *Block {
	b.contents = b.regex.ReplaceAllString(b.contents, "$1")
	return b
}

// Remove deletes the tag markers and the block's contents.
func (b *Block) Remove() *Block {
	b.contents = b.regex.ReplaceAllString(b.contents, "")
	return b
}

// String returns the current contents.
func (b *Block) String() string {
	return b.contents
}

// ResolveBlock rewrites filename, keeping the tagged region when keep is
// true and dropping it otherwise.
func ResolveBlock(filename, tag string, keep bool) error {
	block, err := NewBlock(filename, tag)
	if err != nil {
		return err
	}

	if keep {
		block.Add()
	} else {
		block.Remove()
	}

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", filename, err)
	}

	if err := os.WriteFile(filename, []byte(block.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return nil
}
