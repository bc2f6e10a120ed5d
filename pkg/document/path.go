package document

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Path addresses a node by child indexes from the document root.
type Path []int

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path{}, p...)
}

// Append returns a new path with idx appended.
func (p Path) Append(idx ...int) Path {
	out := make(Path, 0, len(p)+len(idx))
	out = append(out, p...)
	return append(out, idx...)
}

func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1].Clone()
}

// Last returns the index of the node within its parent or -1 for the root.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

func (p Path) Next() Path {
	if len(p) == 0 {
		return nil
	}
	out := p.Clone()
	out[len(out)-1]++
	return out
}

// Previous returns the previous sibling path and false if there is none.
func (p Path) Previous() (Path, bool) {
	if len(p) == 0 || p[len(p)-1] == 0 {
		return nil, false
	}
	out := p.Clone()
	out[len(out)-1]--
	return out, true
}

// Slice returns the first depth indexes of p.
func (p Path) Slice(depth int) Path {
	if depth > len(p) {
		depth = len(p)
	}
	if depth < 0 {
		depth = 0
	}
	return p[:depth].Clone()
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare orders paths in document order. An ancestor compares equal to its
// descendants.
func (p Path) Compare(other Path) int {
	n := min(len(p), len(other))
	for i := 0; i < n; i++ {
		if p[i] < other[i] {
			return -1
		}
		if p[i] > other[i] {
			return 1
		}
	}
	return 0
}

func (p Path) IsBefore(other Path) bool { return p.Compare(other) < 0 }

func (p Path) IsAfter(other Path) bool { return p.Compare(other) > 0 }

// IsAncestorOf reports whether p is a strict prefix of other.
func (p Path) IsAncestorOf(other Path) bool {
	return len(p) < len(other) && p.Compare(other) == 0
}

// HasPrefix reports whether p equals other or is its descendant.
func (p Path) HasPrefix(other Path) bool {
	return len(other) <= len(p) && p.Compare(other) == 0
}

func (p Path) IsSibling(other Path) bool {
	return len(p) > 0 && len(p) == len(other) && p.Parent().Equal(other.Parent()) && !p.Equal(other)
}

// EndsBefore reports whether p's last index lies before the index of other at
// the same depth while sharing the same parent.
func (p Path) EndsBefore(other Path) bool {
	i := len(p) - 1
	if i < 0 || len(other) <= i {
		return false
	}
	return Path(p[:i]).Equal(other[:i]) && p[i] < other[i]
}

// EndsAt reports whether other passes through p's position.
func (p Path) EndsAt(other Path) bool {
	i := len(p) - 1
	if i < 0 || len(other) <= i {
		return false
	}
	return Path(p[:i]).Equal(other[:i]) && p[i] == other[i]
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// ParsePath parses the dotted form produced by Path.String.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	p := make(Path, len(parts))
	for i, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 {
			return nil, errors.Errorf("invalid path %q", s)
		}
		p[i] = idx
	}
	return p, nil
}
