// Package persona names the viewer on the closing slide.
//
// Generator asks an LLM for a short title and description when one is
// configured and otherwise, or whenever the model call fails, derives a
// persona from the viewing numbers with fixed rules. Generate never fails.
package persona
