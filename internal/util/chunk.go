package util

import (
	"fmt"
	"strings"
)

// ChunkText splits text into overlapping segments for indexing.
//
// Each window is chunkSize characters; when the cut falls inside the text it
// prefers the last sentence boundary (". ") in the second half of the window,
// then the last word boundary, then the raw offset. The next window starts at
// end-overlap, so consecutive chunks share up to overlap characters.
func ChunkText(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must satisfy 0 <= overlap < chunk size, got overlap=%d chunk size=%d", overlap, chunkSize)
	}

	if len(text) <= chunkSize {
		return []string{text}, nil
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		mid := start + chunkSize/2
		if cut := strings.LastIndex(text[start:end], ". "); cut != -1 && start+cut > mid {
			end = start + cut + 1
		} else if cut := strings.LastIndex(text[start:end], " "); cut != -1 && start+cut > mid {
			end = start + cut
		}

		chunks = append(chunks, text[start:end])

		next := end - overlap
		if next <= start {
			// boundary cuts plus a large overlap can stop the window from
			// advancing; fall through to the raw end so the walk terminates
			next = end
		}
		start = next
	}

	return chunks, nil
}
