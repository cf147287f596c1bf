package rope

import "io"

type chunkIterFrame struct {
	node *Node
	idx  int
}

// ChunkIterator iterates over the chunks of a rope in order.
type ChunkIterator struct {
	stack []chunkIterFrame
	chunk Chunk
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]chunkIterFrame, 0, 16)}
	if r.root != nil {
		it.stack = append(it.stack, chunkIterFrame{node: r.root})
	}
	return it
}

// Next advances to the next non-empty chunk.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.IsLeaf() {
			if top.idx < len(top.node.chunks) {
				it.chunk = top.node.chunks[top.idx]
				top.idx++
				if it.chunk.IsEmpty() {
					continue
				}
				return true
			}
		} else if top.idx < len(top.node.children) {
			child := top.node.children[top.idx]
			top.idx++
			it.stack = append(it.stack, chunkIterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// WriteTo writes the rope's text to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Chunk().String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
