package rag

import (
	"fmt"
	"strings"

	"github.com/nikhilkoche/Home-Assignment/pkg/chat"
	"github.com/nikhilkoche/Home-Assignment/pkg/llm"
)

// qaSystemPrompt frames the model as a PDF assistant grounded in the
// retrieved passages only.
const qaSystemPrompt = `You are having a conversation with a user who is asking you questions about the uploaded PDF.
Your answers should be helpful and contextual. Provide the complete text cited as necessary.

In the retrieved information, you may be given URLs. Please provide the URLs if requested.

Always:
- Base responses only on the provided PDF.
- Provide helpful and contextual information.
- Maintain coherence between answers.
- ONLY provide information contained within the PDF rather than personal opinions or external knowledge.

Retrieved information from the PDF:

%s`

// condenseSystemPrompt turns a follow-up into a standalone question.
const condenseSystemPrompt = `Given a chat history and the latest user input which might reference context in the chat history, formulate a standalone question which can be understood without the chat history. Do NOT answer the question, just reformulate it if needed and otherwise return it as is.`

// formatPassages renders retrieved passages for the system prompt,
// citing source and page.
func formatPassages(passages []chat.Passage) string {
	if len(passages) == 0 {
		return "(no relevant passages were found in the document)"
	}
	var b strings.Builder
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s, page %d]\n%s", p.Source, p.Page, p.Content)
	}
	return b.String()
}

// historyMessages converts conversation turns into chat messages.
func historyMessages(history []chat.Turn) []llm.ChatMessage {
	msgs := make([]llm.ChatMessage, 0, len(history))
	for _, turn := range history {
		msgs = append(msgs, llm.ChatMessage{Role: turn.Role, Content: turn.Content})
	}
	return msgs
}

// BuildQAMessages assembles the question-answering conversation: grounded
// system prompt, recent history, then the user's question.
func BuildQAMessages(passages []chat.Passage, history []chat.Turn, question string) []llm.ChatMessage {
	msgs := []llm.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(qaSystemPrompt, formatPassages(passages))},
	}
	msgs = append(msgs, historyMessages(history)...)
	return append(msgs, llm.ChatMessage{Role: "user", Content: question})
}

// BuildCondenseMessages assembles the standalone-question reformulation
// conversation used before retrieval when history exists.
func BuildCondenseMessages(history []chat.Turn, question string) []llm.ChatMessage {
	msgs := []llm.ChatMessage{
		{Role: "system", Content: condenseSystemPrompt},
	}
	msgs = append(msgs, historyMessages(history)...)
	return append(msgs, llm.ChatMessage{Role: "user", Content: question})
}
