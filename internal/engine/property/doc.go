// Package property keeps formatting runs over the document's position space.
//
// A List is a sequence of runs, each a maximal span of positions sharing one
// property value. Runs are nodes of an ostree.Tree, so they are found by
// position in O(log n) and resized without shifting anything. The list is
// kept in step with the text by calling OnInsert, OnDelete, and OnModify
// after each edit.
//
// Two concrete lists are provided. ParagraphList splits its runs at
// paragraph separators; SpanList keeps character-level attributes and splits
// runs only when inserted text carries a different property.
//
// Iteration:
//
//	it := list.CreateIterator(textrange.New(10, 20))
//	for it.HasNext() {
//		run, err := it.Next()
//		if err != nil {
//			return err
//		}
//		// use run.Range and run.Property
//	}
//
// An Iterator is single-pass. Mutating the list invalidates it, and the next
// call to Next reports enginerr.ErrConcurrentModification.
package property
