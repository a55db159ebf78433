// Package llm wraps the chat-completion endpoint used to normalize raw
// transcripts into clean prose. The caller selects a named prompt preset or
// supplies a custom system prompt; a failed call is recoverable upstream,
// where the pipeline degrades to rule-based normalization.
package llm
