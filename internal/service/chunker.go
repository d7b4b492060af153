package service

import (
	"github.com/pkoukk/tiktoken-go"
)

// TokenEncoder abstracts the BPE tokenizer so chunking is testable without
// the encoding files.
type TokenEncoder interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

type tiktokenEncoder struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenEncoder loads the cl100k_base encoding.
func NewTiktokenEncoder() (TokenEncoder, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &tiktokenEncoder{enc: enc}, nil
}

func (t *tiktokenEncoder) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *tiktokenEncoder) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// ChunkText splits text into chunks of at most maxTokens tokens.
func ChunkText(enc TokenEncoder, text string, maxTokens int) []string {
	if maxTokens <= 0 {
		return []string{text}
	}

	tokens := enc.Encode(text)
	chunks := make([]string, 0, (len(tokens)+maxTokens-1)/maxTokens)
	for i := 0; i < len(tokens); i += maxTokens {
		end := i + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, enc.Decode(tokens[i:end]))
	}
	return chunks
}
