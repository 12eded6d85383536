package showcase

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunPlaysAllStages(t *testing.T) {
	var buf bytes.Buffer
	if err := NewApp("Contacts").Run(&buf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<h1>Contacts</h1>",
		"Ada Lovelace",
		"Grace Hopper",
		"countess@example.com",
		"Edsger Dijkstra",
		"document children: 0",
		"list state: disposed, card state: disposed",
		"model listeners remaining: 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	// The initial render must not already contain the contact added
	// over the bus later.
	initial := out[:strings.Index(out, "== after model change ==")]
	if strings.Contains(initial, "Edsger") {
		t.Errorf("bus contact present before publish:\n%s", initial)
	}
}

func TestRunsAreIndependent(t *testing.T) {
	var first, second bytes.Buffer
	if err := NewApp("One").Run(&first); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := NewApp("Two").Run(&second); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if strings.Contains(second.String(), "<h1>One</h1>") {
		t.Error("second run leaked state from the first")
	}
}
