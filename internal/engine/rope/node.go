package rope

import "strings"

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
type Node struct {
	height  uint8
	summary TextSummary

	// Internal node fields (height > 0)
	children       []*Node
	childSummaries []TextSummary

	// Leaf node fields (height == 0)
	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	n.recomputeSummary()
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	summaries := make([]TextSummary, len(children))
	var total TextSummary
	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         children[0].height + 1,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the number of characters in this subtree.
func (n *Node) Len() int {
	return n.summary.Chars
}

func (n *Node) recomputeSummary() {
	n.summary = TextSummary{Flags: FlagASCII}
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}
	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{summary: n.summary, chunks: chunks}
	}

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the text in the char range [start, end) to sb.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Len()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}
			sliceStart := max(start-offset, 0)
			sliceEnd := min(end-offset, chunk.Len())
			sb.WriteString(chunk.Slice(sliceStart, sliceEnd))
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childLen := n.childSummaries[i].Chars
		childEnd := offset + childLen
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}
		child.appendRange(sb, max(start-offset, 0), min(end-offset, childLen))
		offset = childEnd
	}
}

// charAt returns the rune at the char offset, which must be in range.
func (n *Node) charAt(offset int) rune {
	node := n
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByChar(offset)
		node = node.children[idx]
		offset = childOffset
	}
	for _, chunk := range node.chunks {
		if offset < chunk.Len() {
			return chunk.runeAt(offset)
		}
		offset -= chunk.Len()
	}
	return 0
}

// offsetAfterNewline returns the char offset just past the nl-th newline
// (1-indexed) in this subtree.
func (n *Node) offsetAfterNewline(nl int) int {
	offset := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			if nl <= chunk.summary.Lines {
				return offset + offsetAfterNewline(chunk.data, nl)
			}
			nl -= chunk.summary.Lines
			offset += chunk.Len()
		}
		return offset
	}
	for i, sum := range n.childSummaries {
		if nl <= sum.Lines {
			return offset + n.children[i].offsetAfterNewline(nl)
		}
		nl -= sum.Lines
		offset += sum.Chars
	}
	return offset
}

// newlinesBefore counts the newlines in the char range [0, offset).
func (n *Node) newlinesBefore(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= n.Len() {
		return n.summary.Lines
	}

	count := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			if offset < chunk.Len() {
				return count + newlinesBefore(chunk.data, offset)
			}
			count += chunk.summary.Lines
			offset -= chunk.Len()
		}
		return count
	}
	for i, sum := range n.childSummaries {
		if offset < sum.Chars {
			return count + n.children[i].newlinesBefore(offset)
		}
		count += sum.Lines
		offset -= sum.Chars
	}
	return count
}

// split splits the node at a char offset.
// Left contains [0, offset), right contains [offset, end).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Len() {
		return n.clone(), newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	current := 0

	for _, chunk := range n.chunks {
		chunkLen := chunk.Len()
		switch {
		case current+chunkLen <= offset:
			leftChunks = append(leftChunks, chunk)
		case current >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.Split(offset - current)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		current += chunkLen
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

func (n *Node) splitInternal(offset int) (*Node, *Node) {
	var leftChildren, rightChildren []*Node
	current := 0

	for i, child := range n.children {
		childLen := n.childSummaries[i].Chars
		switch {
		case current+childLen <= offset:
			leftChildren = append(leftChildren, child)
		case current >= offset:
			rightChildren = append(rightChildren, child)
		default:
			leftChild, rightChild := child.split(offset - current)
			if leftChild.Len() > 0 {
				leftChildren = append(leftChildren, leftChild)
			}
			if rightChild.Len() > 0 {
				rightChildren = append(rightChildren, rightChild)
			}
		}
		current += childLen
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a balanced tree from same-height nodes.
func buildNodeFromChildren(children []*Node) *Node {
	switch {
	case len(children) == 0:
		return newLeafNode()
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternalNode(children)
	}

	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		parents = append(parents, newInternalNode(children[i:end]))
	}
	return buildNodeFromChildren(parents)
}

// concat concatenates two nodes.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}
	return mergeNodes(left, right)
}

// concatLeaves joins two leaves, folding the boundary chunks together when
// they fit so single-character edits do not fragment the tree.
func concatLeaves(left, right *Node) *Node {
	chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)
	rest := right.chunks
	if len(chunks) > 0 && len(rest) > 0 {
		last := chunks[len(chunks)-1]
		if last.ByteLen()+rest[0].ByteLen() <= MaxChunkSize {
			chunks[len(chunks)-1] = NewChunk(last.data + rest[0].data)
			rest = rest[1:]
		}
	}
	chunks = append(chunks, rest...)

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeafNodeWithChunks(chunks)
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}
	return buildNodeFromChildren(leaves)
}

// mergeNodes merges two nodes of the same height. The children meeting at
// the seam are concatenated recursively so appends reach the boundary leaf.
func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	lc, rc := left.children, right.children
	seam := lc[len(lc)-1]
	joined := concat(seam, rc[0])

	all := make([]*Node, 0, len(lc)+len(rc)+1)
	all = append(all, lc[:len(lc)-1]...)
	if joined.height > seam.height {
		all = append(all, joined.children...)
	} else {
		all = append(all, joined)
	}
	all = append(all, rc[1:]...)
	return buildNodeFromChildren(all)
}

// findChildByChar finds the child containing the given char offset and
// returns its index and the offset within it.
func (n *Node) findChildByChar(offset int) (int, int) {
	current := 0
	for i, sum := range n.childSummaries {
		if current+sum.Chars > offset {
			return i, offset - current
		}
		current += sum.Chars
	}
	last := len(n.children) - 1
	return last, offset - (n.summary.Chars - n.childSummaries[last].Chars)
}
