package graph

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Graph is the result of comparing two libraries.
type Graph struct {
	Nodes     []*Node          `json:"nodes"`
	Links     []Link           `json:"links"`
	Changelog []*ChangelogItem `json:"changelogList"`

	RevFirst            string `json:"revFirst"`
	RevSecond           string `json:"revSecond"`
	EqualRevisionNumber bool   `json:"equalRevisionNumber"`
	ShowMitigations     bool   `json:"showMitigations"`
	Directed            bool   `json:"directed"`
	Multigraph          bool   `json:"multigraph"`
}

// New returns an empty directed graph.
func New(showMitigations bool) *Graph {
	return &Graph{
		Nodes:           []*Node{},
		Links:           []Link{},
		Changelog:       []*ChangelogItem{},
		ShowMitigations: showMitigations,
		Directed:        true,
	}
}

// IsEmpty reports whether the graph has neither nodes nor changelog items.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0 && len(g.Changelog) == 0
}

// Root returns the root node, or nil.
func (g *Graph) Root() *Node {
	for _, n := range g.Nodes {
		if n.Kind == KindRoot {
			return n
		}
	}
	return nil
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Children returns the nodes linked from id, in link order.
func (g *Graph) Children(id string) []*Node {
	var children []*Node
	for _, l := range g.Links {
		if l.Source != id {
			continue
		}
		if n := g.Node(l.Target); n != nil {
			children = append(children, n)
		}
	}
	return children
}

// Failure records a library whose comparison aborted during a version sweep.
type Failure struct {
	Library string `json:"library"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// GraphList is the result of comparing every library of two versions.
type GraphList struct {
	// Graphs maps library ref to graph in sorted ref order.
	Graphs *orderedmap.OrderedMap[string, *Graph] `json:"graphs"`

	AddedLibraries   []string  `json:"addedLibraries"`
	DeletedLibraries []string  `json:"deletedLibraries"`
	Failures         []Failure `json:"failures,omitempty"`
}

// NewList returns an empty GraphList.
func NewList() *GraphList {
	return &GraphList{
		Graphs:           orderedmap.New[string, *Graph](),
		AddedLibraries:   []string{},
		DeletedLibraries: []string{},
	}
}

// Put stores the graph of one library.
func (gl *GraphList) Put(ref string, g *Graph) {
	gl.Graphs.Set(ref, g)
}

// Get returns the graph of one library.
func (gl *GraphList) Get(ref string) (*Graph, bool) {
	return gl.Graphs.Get(ref)
}

// Each calls fn for every graph in insertion order.
func (gl *GraphList) Each(fn func(ref string, g *Graph)) {
	for pair := gl.Graphs.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Fail records a per-library failure.
func (gl *GraphList) Fail(ref string, err error) {
	gl.Failures = append(gl.Failures, Failure{
		Library: ref,
		Message: err.Error(),
		Err:     err,
	})
}

// Err joins all recorded failures, or returns nil.
func (gl *GraphList) Err() error {
	if len(gl.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(gl.Failures))
	for _, f := range gl.Failures {
		errs = append(errs, fmt.Errorf("library %s: %w", f.Library, f.Err))
	}
	return errors.Join(errs...)
}
