// Package buffer provides the piece table that holds a document's character
// content.
//
// Text is never moved once written. Inserted content is appended to a
// charbuf.Buffer, and the document is described by an ordered sequence of
// pieces, each naming a slice of that buffer. The pieces live in an
// ostree.Tree keyed by their lengths, so reading, inserting, and deleting by
// document position are all O(log n) in the number of pieces.
//
// Basic usage:
//
//	buf := buffer.New("0123456789")
//	_ = buf.Insert(9, "abcdef", false) // after '9'
//	text, _ := buf.GetText(textrange.New(2, 4)) // "2345"
//	_ = buf.Delete(textrange.New(0, 10))
//	buf.String() // "abcdef"
//
// Insert positions name an existing character: by default content goes after
// the character at pos, and with before set it goes in front of it. Inserting
// at pos == Len() appends.
//
// Deletion only rewrites piece bookkeeping; the character buffer is never
// modified. A Buffer is not safe for concurrent use.
package buffer
