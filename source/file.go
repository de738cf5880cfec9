package source

import (
	"github.com/garciat/roto/tree"
)

// FileDef is one input file's worth of declarations, as produced by the reader.
type FileDef struct {
	Path  string
	Decls []*tree.TypeDecl

	// Roots names the declarations the file wants resolved. Empty means all
	// non-generic declarations.
	Roots []string

	// Expect is the printed IR the file should produce, for corpus files.
	Expect    string
	HasExpect bool
}

func CollectDecls(files []*FileDef) []*tree.TypeDecl {
	var decls []*tree.TypeDecl
	for _, file := range files {
		decls = append(decls, file.Decls...)
	}
	return decls
}
