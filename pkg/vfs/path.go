package vfs

import (
	"errors"
	"strings"

	"treedict/pkg/sequence"
	"treedict/pkg/stack"
)

var ErrAbsoluteJoin = errors.New("cannot join with an absolute path")

// Path is a normalized virtual path: a token per component, with a leading
// "/" token marking an absolute path. Normalization collapses "." and empty
// components and resolves ".." against the preceding component.
type Path struct {
	tokens *sequence.Sequence[string]
}

func NewPath(raw string) Path {
	p := Path{tokens: sequence.New[string](0)}
	p.normalize(raw)
	return p
}

func (p *Path) normalize(raw string) {
	if raw == "" {
		return
	}

	isAbs := raw[0] == '/'
	pending := stack.New[string](0)
	for _, token := range strings.Split(raw, "/") {
		switch {
		case token == "" || token == ".":
		case token == ".." && pending.Empty() && isAbs:
			// ".." above the root stays at the root.
		case token == ".." && !pending.Empty() && pending.Top() != "..":
			pending.Pop()
		default:
			pending.Push(token)
		}
	}

	if isAbs {
		p.tokens.Append("/")
	}
	for _, token := range pending.Items() {
		p.tokens.Append(token)
	}
}

func (p Path) String() string {
	if p.IsEmpty() {
		return "."
	}
	parts := make([]string, 0, p.tokens.Len())
	start := 0
	if p.IsAbsolute() {
		start = 1
	}
	for i := start; i < p.tokens.Len(); i++ {
		parts = append(parts, p.tokens.Get(i))
	}
	if p.IsAbsolute() {
		return "/" + strings.Join(parts, "/")
	}
	return strings.Join(parts, "/")
}

func (p Path) Size() int {
	return p.tokens.Len()
}

func (p Path) At(index int) string {
	return p.tokens.Get(index)
}

func (p Path) IsEmpty() bool {
	return p.tokens.Empty()
}

func (p Path) IsAbsolute() bool {
	return !p.tokens.Empty() && p.tokens.Get(0) == "/"
}

// Base returns the last component verbatim (name plus extension).
func (p Path) Base() string {
	if p.IsEmpty() {
		return ""
	}
	return p.tokens.Last()
}

// Name returns the last component with any extension stripped.
func (p Path) Name() string {
	base := p.Base()
	if dot := strings.LastIndexByte(base, '.'); dot > 0 {
		return base[:dot]
	}
	if base == "/" {
		return ""
	}
	return base
}

// Extension returns the last component's extension including the dot, or
// the empty string.
func (p Path) Extension() string {
	base := p.Base()
	if dot := strings.LastIndexByte(base, '.'); dot > 0 {
		return base[dot:]
	}
	return ""
}

// Location returns the path without its last component.
func (p Path) Location() Path {
	loc := Path{tokens: sequence.New[string](0)}
	if !p.IsEmpty() {
		loc.tokens = p.tokens.SubArray(0, p.tokens.Len()-1)
	}
	return loc
}

func (p Path) IsToFile() bool {
	return p.Extension() != ""
}

func (p Path) IsToFolder() bool {
	return p.Extension() == ""
}

// Join appends a relative path. Joining an absolute path fails.
func (p Path) Join(other Path) (Path, error) {
	if other.IsAbsolute() {
		return Path{}, ErrAbsoluteJoin
	}
	joined := Path{tokens: p.tokens.Clone()}
	joined.tokens.Concat(other.tokens)
	return joined, nil
}

func (p Path) Equal(other Path) bool {
	if p.tokens.Len() != other.tokens.Len() {
		return false
	}
	for i := 0; i < p.tokens.Len(); i++ {
		if p.tokens.Get(i) != other.tokens.Get(i) {
			return false
		}
	}
	return true
}
