// Package testing provides a harness for testing components.
//
// # Quick Start
//
// Create a harness, place a component, and make assertions:
//
//	func TestMyForm(t *testing.T) {
//	    h := progtest.NewHarnessWithT(t)
//	    form := NewMyForm(h.Placers(), h.Runtime())
//	    h.Place(form, nil, MyFormProps{})
//
//	    // Find widgets
//	    button := h.Find(progtest.ByText("Submit")).First().(*toolkit.Button)
//
//	    // Simulate input
//	    button.Fire()
//
//	    // Assert state
//	    if !h.Find(progtest.ByText("Submitted")).Exists() {
//	        t.Error("expected 'Submitted' text")
//	    }
//	}
//
// The harness binds the test goroutine as the UI thread, so engine calls
// are made directly. Every engine step is recorded; Hooks and Count filter
// the records by component.
//
// # Snapshot Testing
//
// Capture and compare the widget and component trees:
//
//	snapshot := h.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/my_form.snapshot.json")
//
// Update snapshots with:
//
//	PROGRESSIVE_UPDATE_SNAPSHOTS=1 go test ./...
package testing
