package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"/":             "/",
		"/a/b/c":        "/a/b/c",
		"a/b":           "a/b",
		"/a//b/":        "/a/b",
		"/a/./b":        "/a/b",
		"/a/b/..":       "/a",
		"/a/../../b":    "/b",
		"/..":           "/",
		"../a":          "../a",
		"../../a":       "../../a",
		"a/../b":        "b",
		"/a/b/../../c/": "/c",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NewPath(raw).String(), "raw %q", raw)
	}
}

func TestEmptyPath(t *testing.T) {
	p := NewPath("")
	assert.True(t, p.IsEmpty())
	assert.False(t, p.IsAbsolute())
	assert.Equal(t, ".", p.String())
}

func TestAbsolute(t *testing.T) {
	assert.True(t, NewPath("/a").IsAbsolute())
	assert.False(t, NewPath("a/b").IsAbsolute())
}

func TestNameAndExtension(t *testing.T) {
	p := NewPath("/docs/report.txt")
	assert.Equal(t, "report.txt", p.Base())
	assert.Equal(t, "report", p.Name())
	assert.Equal(t, ".txt", p.Extension())
	assert.True(t, p.IsToFile())

	d := NewPath("/docs/archive")
	assert.Equal(t, "archive", d.Name())
	assert.Equal(t, "", d.Extension())
	assert.True(t, d.IsToFolder())
}

func TestLocation(t *testing.T) {
	p := NewPath("/a/b/c.txt")
	assert.Equal(t, "/a/b", p.Location().String())
	assert.Equal(t, "/a", p.Location().Location().String())
	assert.Equal(t, "/", NewPath("/a").Location().String())
}

func TestJoin(t *testing.T) {
	joined, err := NewPath("/a").Join(NewPath("b/c"))
	assert.NoError(t, err)
	assert.Equal(t, "/a/b/c", joined.String())

	_, err = NewPath("/a").Join(NewPath("/b"))
	assert.ErrorIs(t, err, ErrAbsoluteJoin)
}

func TestEqual(t *testing.T) {
	assert.True(t, NewPath("/a/./b").Equal(NewPath("/a/b")))
	assert.False(t, NewPath("/a/b").Equal(NewPath("/a")))
	assert.False(t, NewPath("a").Equal(NewPath("/a")))
}
