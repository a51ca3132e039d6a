package navbits

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Interchange grammar:
//
//	<decimal-bit-count> <sep> 0xHHHHHHHH [<sep> 0xHHHHHHHH]*
//
// with exactly ceil(bitcount/32) left-justified 32-bit words; the last
// word's low bits beyond the count are padding (zero on export, ignored on
// import). Accepted separators: space, tab, comma, and line breaks.

const (
	dumpWordsPerLine = 5
	importWordBits   = 32
)

// Dump writes a human-readable rendering: the metadata block followed by the
// content as left-justified 32-bit hex words, five per line.
func (b *Buffer) Dump(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("*", 76))
	fmt.Fprintln(w, "Packed Navigation Message")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "SatID: %s\n", b.sat)
	fmt.Fprintf(w, "Carrier: %s      Code: %s      NavType: %s\n", b.obs.Band, b.obs.Code, b.nav)

	if b.rx != "" {
		fmt.Fprintf(w, "RxID: %s\n", b.rx)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Number of bits: %d\n", b.bitsUsed)
	fmt.Fprintf(w, "Xmit time: %s\n", b.xmit.UTC().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Packed bits, left-justified, 32 bits long:")

	for i, word := range b.usedWords() {
		fmt.Fprintf(w, "  0x%08X", word)

		if (i+1)%dumpWordsPerLine == 0 {
			fmt.Fprintln(w)
		}
	}

	if wordsFor(b.bitsUsed)%dumpWordsPerLine != 0 {
		fmt.Fprintln(w)
	}
}

// ExportHexWords writes the interchange form: the decimal bit count followed
// by left-justified hex words, flushed every bitsPerWord bits, wordsPerLine
// per line, each preceded by the delimiter. bitsPerWord 32 with any of the
// accepted separators produces text ImportText reconstructs exactly.
func (b *Buffer) ExportHexWords(w io.Writer, wordsPerLine int, delimiter string, bitsPerWord int) error {
	if wordsPerLine < 1 || bitsPerWord < 1 || bitsPerWord > importWordBits {
		return ErrRange
	}

	if _, err := fmt.Fprintf(w, "%d", b.bitsUsed); err != nil {
		return err
	}

	var word uint32
	bitsInWord := 0
	wordCount := 0

	for i := 0; i < b.bitsUsed; i++ {
		word <<= 1
		if b.getBit(i) {
			word++
		}

		bitsInWord++
		if bitsInWord < bitsPerWord && i != b.bitsUsed-1 {
			continue
		}

		// Left-justify a partial final word.
		word <<= uint(importWordBits - bitsInWord)

		if _, err := fmt.Fprintf(w, "%s 0x%08X", delimiter, word); err != nil {
			return err
		}

		word = 0
		bitsInWord = 0
		wordCount++

		if wordCount%wordsPerLine == 0 && i != b.bitsUsed-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}

	return nil
}

// ImportText replaces the buffer's content with the bit sequence encoded in
// the interchange text. Metadata is untouched.
func (b *Buffer) ImportText(text string) error {
	tokens := strings.FieldsFunc(text, isInterchangeSep)
	if len(tokens) == 0 {
		return fmt.Errorf("%w: missing bit count", ErrMalformedInput)
	}

	bitCount, err := strconv.Atoi(tokens[0])
	if err != nil || bitCount < 1 {
		return fmt.Errorf("%w: bad bit count %q", ErrMalformedInput, tokens[0])
	}

	if bitCount > b.capBits {
		return ErrCapacity
	}

	wordsExpected := (bitCount + importWordBits - 1) / importWordBits
	if len(tokens)-1 < wordsExpected {
		return fmt.Errorf("%w: %d hex words for %d bits, need %d",
			ErrMalformedInput, len(tokens)-1, bitCount, wordsExpected)
	}

	words := make([]uint32, wordsExpected)
	for i := 0; i < wordsExpected; i++ {
		word, err := parseHexWord(tokens[i+1])
		if err != nil {
			return err
		}

		words[i] = word
	}

	// Tokens validated; safe to replace content now.
	b.ClearBits()

	remaining := bitCount
	for _, word := range words {
		take := remaining
		if take > importWordBits {
			take = importWordBits
		}

		// Words are left-justified: the data sits in the high bits.
		if err := b.appendBits(uint64(word)>>uint(importWordBits-take), take); err != nil {
			return err
		}

		remaining -= take
	}

	b.Trim()

	return nil
}

// parseHexWord parses one 0x-prefixed, exactly-eight-digit hex token. Words
// are left-justified, so a shorter token would be ambiguous.
func parseHexWord(token string) (uint32, error) {
	if len(token) < 2 || (token[:2] != "0x" && token[:2] != "0X") {
		return 0, fmt.Errorf("%w: hex word %q lacks 0x prefix", ErrMalformedInput, token)
	}

	if len(token) != 10 {
		return 0, fmt.Errorf("%w: hex word %q is not 8 digits", ErrMalformedInput, token)
	}

	v, err := strconv.ParseUint(token[2:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad hex word %q", ErrMalformedInput, token)
	}

	return uint32(v), nil
}

func isInterchangeSep(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == '\n' || r == '\r'
}

// usedWords returns the left-justified 32-bit words covering the used
// region, the final partial word zero-padded on the right.
func (b *Buffer) usedWords() []uint32 {
	n := wordsFor(b.bitsUsed)
	out := make([]uint32, n)
	copy(out, b.words[:min(n, len(b.words))])

	if rem := b.bitsUsed % wordBits; rem != 0 && n > 0 {
		out[n-1] &= ^uint32(0) << uint(wordBits-rem)
	}

	return out
}
