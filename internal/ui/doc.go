// Package ui contains the Bubble Tea program that renders a form of select
// fields inside a tmux popup. Model orchestrates messages; the selection
// logic of every field lives in internal/ui/state.Control.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are translated into state.Key values and handed to the
//     active field's controller first. Keys the controller leaves alone fall
//     through to the screen-wide listeners and then to form navigation (tab,
//     submit, cancel).
//   - Mouse presses are resolved against the last layout: clicks outside an
//     open field reach its document listener and close the menu, clicks on a
//     row act on the field that drew it.
//
// State ownership:
//   - Each field owns a state.Control over an option.Store. The dispatcher
//     writes loaded and reloaded options into those stores.
//   - Open menus hold a subscription in the document registry for as long as
//     they stay open.
//
// Backend interactions:
//   - Initial option loads run through the command bus and arrive as
//     command.LoadedMsg.
//   - A backend.Watcher streams reloads for file and tmux sources; Update
//     waits for those events and applies them through the dispatcher.
package ui
