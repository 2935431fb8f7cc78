// Package feedback holds the feedback form state machine and the in-memory
// collection that receives submitted drafts.
//
// The form never reaches into the collection directly. It is handed an
// AddFunc (and optionally an UpdateFunc) at construction time and calls it
// once per accepted submission.
package feedback
