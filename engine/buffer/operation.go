package buffer

import (
	"fmt"
	"time"
)

// EditOperation records a single atomic replace-range mutation that was
// applied to a buffer. Inserts and deletes are the special cases of an
// empty RemovedText or empty InsertedText. Operations are immutable
// once recorded and invertible: swapping removed and inserted text
// yields the operation that undoes this one.
type EditOperation struct {
	Range        PointRange // Range that was replaced, in pre-edit coordinates
	NewEnd       Position   // End of the inserted text, in post-edit coordinates
	RemovedText  string     // Text that was removed (for undo)
	InsertedText string     // Text that was inserted (for redo)
	Time         time.Time  // When the operation was applied (for coalescing)
}

// IsInsert returns true if this operation is a pure insertion.
func (op EditOperation) IsInsert() bool {
	return op.RemovedText == "" && op.InsertedText != ""
}

// IsDelete returns true if this operation is a pure deletion.
func (op EditOperation) IsDelete() bool {
	return op.RemovedText != "" && op.InsertedText == ""
}

// IsReplace returns true if this operation replaced text with new text.
func (op EditOperation) IsReplace() bool {
	return op.RemovedText != "" && op.InsertedText != ""
}

// IsNoop returns true if this operation made no change.
func (op EditOperation) IsNoop() bool {
	return op.RemovedText == "" && op.InsertedText == ""
}

// Delta returns the change in buffer length in bytes.
func (op EditOperation) Delta() int {
	return len(op.InsertedText) - len(op.RemovedText)
}

// NewRange returns the range occupied by the inserted text after the
// operation was applied.
func (op EditOperation) NewRange() PointRange {
	return PointRange{Start: op.Range.Start, End: op.NewEnd}
}

// Invert returns the operation that undoes this one. Its range is
// expressed in the coordinates that exist after this operation applied.
func (op EditOperation) Invert() EditOperation {
	return EditOperation{
		Range:        PointRange{Start: op.Range.Start, End: op.NewEnd},
		NewEnd:       op.Range.End,
		RemovedText:  op.InsertedText,
		InsertedText: op.RemovedText,
		Time:         time.Now(),
	}
}

// String returns a human-readable representation of the operation.
func (op EditOperation) String() string {
	switch {
	case op.IsInsert():
		return fmt.Sprintf("Insert(%s, %q)", op.Range.Start, op.InsertedText)
	case op.IsDelete():
		return fmt.Sprintf("Delete(%s, %q)", op.Range, op.RemovedText)
	default:
		return fmt.Sprintf("Replace(%s, %q -> %q)", op.Range, op.RemovedText, op.InsertedText)
	}
}
