// Package board is the sticky-note interaction engine.
//
// A Board holds the notes of one canvas together with the per-note card
// controllers that turn pointer and keyboard input into note mutations:
// dragging, resizing from the bottom-right handle, stacking, locking,
// content editing, selection and staged tag assignment.
//
// Every mutation is applied to the board's local note state first and then
// reported through Callbacks; the host decides how and when to persist it.
// The engine performs no I/O and is not safe for concurrent use: it expects
// to be driven from a single event loop (a bubbletea Update method, for
// instance).
//
// Coordinates come in two spaces. Pointer events carry screen-space points;
// notes live in canvas space. Transform converts between them for the
// current zoom factor, so note geometry is independent of zoom.
package board
