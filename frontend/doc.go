// Package frontend is the presentation layer of a run: choosing steps,
// tracking each invocation, and showing progress.
//
// Two implementations share the Frontend contract. Fancy seizes the whole
// screen with Bubble Tea programs for selection and animated progress. Plain
// prints line by line, and optionally asks a yes/no question per step. Both
// record statuses through the same Tracker, so the final report is identical.
package frontend
