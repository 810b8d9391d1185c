// Package resolver walks a window tree along a path of (class, caption)
// segments and returns the handles of the matching descendants.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Norgate-AV/comdlg/internal/interfaces"
)

// AnyCaption matches a child regardless of its caption. A child whose
// caption is empty is treated as having this caption.
const AnyCaption = "none"

// ErrAmbiguous is returned when an intermediate segment matches more than
// one child.
var ErrAmbiguous = errors.New("ambiguous window path")

// Segment selects the children of a window by class name and caption.
type Segment struct {
	Class   string
	Caption string
}

// String renders the segment in the form accepted by ParsePath.
func (s Segment) String() string {
	if s.Caption == "" || s.Caption == AnyCaption {
		return s.Class
	}

	return s.Class + ":" + s.Caption
}

// Seg is shorthand for a segment that matches any caption.
func Seg(class string) Segment {
	return Segment{Class: class, Caption: AnyCaption}
}

// AmbiguityError reports which intermediate segment matched several children.
type AmbiguityError struct {
	Depth   int
	Segment Segment
	Matches int
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("%s: segment %d (%s) matched %d children", ErrAmbiguous, e.Depth, e.Segment, e.Matches)
}

func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguous
}

// Resolve descends from root one segment at a time. Every segment but the
// last must match exactly one direct child. A segment that matches nothing
// yields an empty result rather than an error, so callers can poll until
// the controls exist. The final segment may match any number of children.
// Zero matches at any depth yields an empty result; only more than one
// match at an intermediate segment is an error (*AmbiguityError).
func Resolve(tree interfaces.WindowTree, root uintptr, path []Segment) ([]uintptr, error) {
	if root == 0 || len(path) == 0 {
		return nil, nil
	}

	current := root
	for depth, seg := range path {
		matches := matchChildren(tree, current, seg)

		if depth == len(path)-1 {
			return matches, nil
		}

		switch len(matches) {
		case 0:
			return nil, nil
		case 1:
			current = matches[0]
		default:
			return nil, &AmbiguityError{Depth: depth, Segment: seg, Matches: len(matches)}
		}
	}

	return nil, nil
}

// ResolveOne resolves path and returns the single match, or 0 when there is
// not exactly one.
func ResolveOne(tree interfaces.WindowTree, root uintptr, path []Segment) (uintptr, error) {
	matches, err := Resolve(tree, root, path)
	if err != nil {
		return 0, err
	}

	if len(matches) != 1 {
		return 0, nil
	}

	return matches[0], nil
}

func matchChildren(tree interfaces.WindowTree, parent uintptr, seg Segment) []uintptr {
	want := normalizeCaption(seg.Caption)

	var matches []uintptr
	for _, child := range tree.ChildWindows(parent) {
		if tree.ClassName(child) != seg.Class {
			continue
		}

		if want != AnyCaption && normalizeCaption(tree.WindowText(child)) != want {
			continue
		}

		matches = append(matches, child)
	}

	return matches
}

func normalizeCaption(caption string) string {
	if caption == "" {
		return AnyCaption
	}

	return caption
}

// ParsePath parses "Class/Class:Caption/..." into segments. A segment
// without a caption matches any caption.
func ParsePath(s string) ([]Segment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, "/")
	path := make([]Segment, 0, len(parts))

	for i, part := range parts {
		class, caption, _ := strings.Cut(part, ":")
		class = strings.TrimSpace(class)

		if class == "" {
			return nil, fmt.Errorf("segment %d: class name is required", i)
		}

		path = append(path, Segment{Class: class, Caption: normalizeCaption(caption)})
	}

	return path, nil
}
