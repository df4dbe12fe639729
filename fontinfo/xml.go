// fontmerge - merge supplementary glyphs into TrueType fonts
// Copyright (C) 2026  The fontmerge authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fontinfo

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/antchfx/xpath"
)

// node is an element of a parsed XML document.
type node struct {
	typ      xpath.NodeType
	name     string
	text     string
	attrs    []xml.Attr
	parent   *node
	children []*node
	index    int // position in parent.children
}

func (n *node) appendChild(child *node) {
	child.parent = n
	child.index = len(n.children)
	n.children = append(n.children, child)
}

func (n *node) innerText() string {
	if n.typ == xpath.TextNode {
		return n.text
	}
	b := &strings.Builder{}
	for _, child := range n.children {
		b.WriteString(child.innerText())
	}
	return b.String()
}

// parseXML reads an XML document into a tree.  Comments, processing
// instructions and directives are discarded.
func parseXML(r io.Reader) (*node, error) {
	root := &node{typ: xpath.RootNode}
	cur := root

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			elem := &node{
				typ:   xpath.ElementNode,
				name:  tok.Name.Local,
				attrs: tok.Copy().Attr,
			}
			cur.appendChild(elem)
			cur = elem
		case xml.EndElement:
			cur = cur.parent
		case xml.CharData:
			cur.appendChild(&node{typ: xpath.TextNode, text: string(tok)})
		}
	}
	if len(root.children) == 0 {
		return nil, errors.New("empty XML document")
	}
	return root, nil
}

// navigator implements xpath.NodeNavigator for a parsed XML document.
type navigator struct {
	root, cur *node
	attr      int // index into cur.attrs, or -1
}

func newNavigator(root *node) *navigator {
	return &navigator{root: root, cur: root, attr: -1}
}

func (nav *navigator) NodeType() xpath.NodeType {
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	return nav.cur.typ
}

func (nav *navigator) LocalName() string {
	if nav.attr != -1 {
		return nav.cur.attrs[nav.attr].Name.Local
	}
	return nav.cur.name
}

func (*navigator) Prefix() string {
	return ""
}

func (nav *navigator) Value() string {
	if nav.attr != -1 {
		return nav.cur.attrs[nav.attr].Value
	}
	return nav.cur.innerText()
}

func (nav *navigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *navigator) MoveToRoot() {
	nav.cur = nav.root
	nav.attr = -1
}

func (nav *navigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1
		return true
	}
	if nav.cur.parent == nil {
		return false
	}
	nav.cur = nav.cur.parent
	return true
}

func (nav *navigator) MoveToNextAttribute() bool {
	if nav.attr >= len(nav.cur.attrs)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *navigator) MoveToChild() bool {
	if nav.attr != -1 || len(nav.cur.children) == 0 {
		return false
	}
	nav.cur = nav.cur.children[0]
	return true
}

func (nav *navigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.cur.parent == nil || nav.cur.index == 0 {
		return false
	}
	nav.cur = nav.cur.parent.children[0]
	return true
}

func (nav *navigator) MoveToNext() bool {
	p := nav.cur.parent
	if nav.attr != -1 || p == nil || nav.cur.index+1 >= len(p.children) {
		return false
	}
	nav.cur = p.children[nav.cur.index+1]
	return true
}

func (nav *navigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.cur.parent == nil || nav.cur.index == 0 {
		return false
	}
	nav.cur = nav.cur.parent.children[nav.cur.index-1]
	return true
}

func (nav *navigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*navigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.cur = n.cur
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = (*navigator)(nil)
