// Package dnd is the drag-and-drop coordination engine.
//
// A Manager binds together a Registry of drag sources and drop targets, a
// Store holding the single drag operation, a read-only Monitor over both,
// the Actions that move the operation through its states, and a Backend
// that translates native input into those actions.
//
// The engine is single-threaded: every action runs synchronously to
// completion, and callers that receive input on several goroutines must
// serialize their calls into the manager.
//
//	m := dnd.NewManager(pointer.New(pointer.DefaultOptions()))
//	id, _ := m.GetRegistry().AddSource("card", &dnd.SourceFuncs{
//		BeginDragFunc: func(dnd.Monitor, dnd.Identifier) any { return card },
//	})
//	m.GetMonitor().SubscribeToStateChange(rerender, nil)
package dnd
