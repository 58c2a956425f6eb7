package usecase

import (
	"fmt"
	"strings"

	"github.com/okorolev/manual-assistant/internal/core/domain"
)

const answerFraming = "You are a helpful assistant for appliance manuals."

// maxChunkChars caps each chunk's contribution to the prompt. The cut is a
// raw byte offset, not sentence-aware.
const maxChunkChars = 1500

func buildAnswerPrompt(query string, retrieved []domain.RetrievedChunk) string {
	var contextBlock strings.Builder
	for _, chunk := range retrieved {
		if chunk.Text == "" {
			continue
		}
		text := chunk.Text
		if len(text) > maxChunkChars {
			text = text[:maxChunkChars]
		}
		if contextBlock.Len() > 0 {
			contextBlock.WriteString("\n\n")
		}
		fmt.Fprintf(&contextBlock, "[SOURCE: %s#%d]\n%s", chunk.FileName, chunk.ChunkID, text)
	}

	return fmt.Sprintf(`%s

CONTEXT:
%s

QUESTION:
%s

INSTRUCTIONS:
- Answer clearly in simple steps.
- Cite sources like [SOURCE: filename#chunkID].
- If the task involves advanced repair (for example replacing a motor, drum, or wiring), state that it is a professional repair and advise calling customer support.
- If the context lacks the answer, reply "I don't know" and suggest contacting support or checking the manual.
`, answerFraming, contextBlock.String(), query)
}
