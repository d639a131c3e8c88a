// Package pipeline implements the content formatting and document assembly
// stages.
//
// Formatting turns the loose markdown dialect returned by generation
// providers into an HTML fragment:
//   - Normalization (line endings, em-dash variants, reserved characters)
//   - Fenced code extraction, with optional chroma highlighting
//   - A line pass for headings, rules, quotes, lists and pipe tables
//   - Inline rules (code spans, bold, italic, links) per line
//   - Paragraph wrapping and empty paragraph removal
//
// Lines that already start with block-level markup pass through verbatim,
// so formatting formatted output is a no-op.
//
// Assembly wraps a fragment into a standalone document, injects CSS and the
// attribution footer. Rendering the document to PDF is handled by the root
// package, which keeps this package free of browser concerns.
//
// Analysis (word and item counts) and the plain-text edit round trip live
// here as well, since they share the tokenizers.
package pipeline
