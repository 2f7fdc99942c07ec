// Package llm is a small OpenAI-compatible chat client (OpenRouter by
// default) used to write the persona blurb on the final slide.
//
// CompleteJSON sends a system and a user prompt and returns the model's JSON
// content. Requests that fail with 408, 429, or a 5xx status are retried with
// exponential backoff, honouring Retry-After when the provider sends one.
// DecodeLLMJSON tolerates code fences and prose around the JSON object.
//
// The client is optional. Callers check Configured and fall back to their
// own output when no key is set or a request fails.
package llm
