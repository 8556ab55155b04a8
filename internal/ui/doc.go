// Package ui contains the Bubble Tea program that shows the submenu popup in a
// terminal.
//
// The Model is itself the popup.Panel its controller renders into: the
// controller decides which rows and title are shown, and the model keeps
// them in a state.Level for cursor movement, filtering and viewport
// calculations.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry.
//   - Key presses (navigation.go) move the cursor, select rows through the
//     controller, step back from the nested view or cycle the menu-bar
//     shortcuts. Filter editing lives in input.go.
//   - Selecting a navigation row closes the popup, records the target and
//     quits; the caller reads it with Model.Result.
package ui
