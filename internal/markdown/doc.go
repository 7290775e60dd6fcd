// Package markdown compiles quiz documents written in a constrained markdown
// dialect into single-locale records. ParseBlocks and ParseQuestion hold the
// line scanner, Compiler assembles a document from one source, and Service
// runs the compiler over every quiz source below a root.
package markdown
