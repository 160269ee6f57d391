package index

// Split breaks long text into overlapping windows measured in runes, so
// multibyte Korean text never splits mid-character. Text at or under the
// window size passes through whole.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = 900
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 10
	}

	runes := []rune(text)
	if len(runes) <= size {
		if len(runes) == 0 {
			return nil
		}
		return []string{text}
	}

	var out []string
	step := size - overlap

	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return out
}

// SplitAll applies Split to every chunk and flattens the result.
func SplitAll(chunks []string, size, overlap int) []string {
	var out []string
	for _, chunk := range chunks {
		out = append(out, Split(chunk, size, overlap)...)
	}
	return out
}
