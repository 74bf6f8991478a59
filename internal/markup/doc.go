// Package markup turns raw slide text into structured pieces.
//
// Three operations live here, all pure and safe for concurrent use:
//
//   - ParseInline splits a string into runs on **emphasis** delimiters.
//   - ExtractBullets splits freeform slide content into an optional heading
//     and an ordered list of bullets.
//   - NormalizeValue flattens loosely typed upstream content (lists, objects,
//     numbers) into a single string before the other two run.
//
// Malformed markup never fails: an unterminated ** is kept as literal text.
package markup
