package ai

import "fmt"

const chatPromptTemplate = `You are a helpful chatbot. Answer the following question based on your general knowledge:

Question: %s
Answer:`

const summarizePromptTemplate = `You are a helpful assistant that summarizes Slack conversations. Create a clear and concise summary of the following conversation.
Focus on the main points, decisions, and action items if any.

Conversation:
%s

Summary:`

func chatPrompt(question string) string {
	return fmt.Sprintf(chatPromptTemplate, question)
}

func summarizePrompt(transcript string) string {
	return fmt.Sprintf(summarizePromptTemplate, transcript)
}
