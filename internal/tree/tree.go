// Package tree turns a flat scanned-file list into a hierarchical view for
// display. The tree is rebuilt fresh from the file list on every render and
// nodes are keyed by path segment, never shared across renders.
package tree

import (
	"sort"
	"strings"

	"github.com/Ephraim-9/epistle/internal/types"
	"github.com/Ephraim-9/epistle/internal/utils"
)

const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchPadding   = "│   "
	lastPadding     = "    "

	binaryAnnotation    = " [binary]"
	oversizedAnnotation = " [oversized]"
)

// Node is one entry of the display tree. File is set on leaves only and
// points back into the scanned-file snapshot.
type Node struct {
	Name     string
	children map[string]*Node
	order    []string
	File     *types.ScannedFile
}

// Build inserts a chain of nodes for every file path segment, attaching the
// file reference at the terminal node. Files and directories are not
// pre-segregated: a directory and a file can be siblings.
func Build(scannedFiles []types.ScannedFile) *Node {
	rootNode := newNode("")
	for fileIndex := range scannedFiles {
		scannedFile := &scannedFiles[fileIndex]
		currentNode := rootNode
		segments := utils.PathSegments(scannedFile.Path)
		for _, segment := range segments {
			currentNode = currentNode.child(segment)
		}
		currentNode.File = scannedFile
	}
	return rootNode
}

// RenderText walks the tree depth-first and renders it with branch
// connectors. At every level children sort by name using ordinary
// lexicographic comparison, so output is deterministic for a given file set.
func RenderText(rootNode *Node) string {
	var builder strings.Builder
	renderChildren(&builder, rootNode, "")
	return builder.String()
}

func newNode(name string) *Node {
	return &Node{Name: name, children: make(map[string]*Node)}
}

func (node *Node) child(name string) *Node {
	if existingChild, present := node.children[name]; present {
		return existingChild
	}
	createdChild := newNode(name)
	node.children[name] = createdChild
	node.order = append(node.order, name)
	return createdChild
}

func (node *Node) sortedChildNames() []string {
	childNames := make([]string, len(node.order))
	copy(childNames, node.order)
	sort.Strings(childNames)
	return childNames
}

func renderChildren(builder *strings.Builder, node *Node, prefix string) {
	childNames := node.sortedChildNames()
	for childIndex, childName := range childNames {
		childNode := node.children[childName]
		isLastChild := childIndex == len(childNames)-1

		connector := branchConnector
		childPrefix := prefix + branchPadding
		if isLastChild {
			connector = lastConnector
			childPrefix = prefix + lastPadding
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(childNode.Name)
		builder.WriteString(leafAnnotation(childNode.File))
		builder.WriteString("\n")

		renderChildren(builder, childNode, childPrefix)
	}
}

func leafAnnotation(scannedFile *types.ScannedFile) string {
	if scannedFile == nil {
		return ""
	}
	if scannedFile.IsBinary {
		return binaryAnnotation
	}
	if scannedFile.IsOversized {
		return oversizedAnnotation
	}
	return ""
}
