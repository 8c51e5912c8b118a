// Package ai generates campaign content with OpenAI-compatible chat
// completion APIs. Both OpenAI and OpenRouter are supported; they share a
// wire format and differ only in base URL and key.
package ai
