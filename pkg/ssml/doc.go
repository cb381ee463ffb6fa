// Package ssml builds fragments of Speech Synthesis Markup Language.
//
// Each tag has its own request type and builder function. Builders are pure:
// they validate the request, escape text content and return the markup, or
// return an error without producing any output. Attribute values are written
// as given and are never escaped.
//
// Callers assemble fragments into a complete document themselves:
//
//	pause, _ := ssml.Break(ssml.BreakRequest{Time: "300"})
//	doc, _ := ssml.Speak(ssml.SpeakRequest{Text: "Hello"})
//
// Fragment and Builder.Render provide a single entry point keyed by tag name
// for callers that receive requests as data (JSON, YAML).
package ssml
