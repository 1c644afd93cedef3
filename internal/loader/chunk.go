package loader

import "github.com/IshankReddy/LLM-Engineer-Course/internal/item"

// Chunks splits raws into contiguous slices of at most size records. The
// slices share raws' backing array.
func Chunks(raws []item.Raw, size int) [][]item.Raw {
	if size <= 0 {
		size = ChunkSize
	}
	if len(raws) == 0 {
		return nil
	}
	chunks := make([][]item.Raw, 0, (len(raws)+size-1)/size)
	for start := 0; start < len(raws); start += size {
		end := start + size
		if end > len(raws) {
			end = len(raws)
		}
		chunks = append(chunks, raws[start:end:end])
	}
	return chunks
}
