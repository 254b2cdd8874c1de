// Package pipeline implements the text stages that turn a rendered post
// into publish-ready markdown.
//
// The stages run in a fixed order on plain strings:
//   - TOC injection: headings outside fenced code are linked from a
//     nested list that replaces a marker comment
//   - Whitespace cleanup: blank line runs collapse and closing fences
//     are tightened
//
// The package also carries the helpers posts reach from templates
// (code highlighting) and the optional HTML export used to inspect a
// compiled post in a browser.
package pipeline
