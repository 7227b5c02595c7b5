package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	none := map[string]bool{}

	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "My Notes", "my-notes"},
		{"mixed case and digits", "Chapter 2 Draft", "chapter-2-draft"},
		{"punctuation dropped", "Hello, World!", "hello-world"},
		{"only punctuation falls back", "!!!???", "untitled"},
		{"empty falls back", "", "untitled"},
		{"traversal neutralized", "../../etc/passwd", "etcpasswd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateID(tc.title, none))
		})
	}
}

func TestGenerateIDCharset(t *testing.T) {
	titles := []string{"Notes", "a/b\\c", "тест документ", "  spaced   out  ", "#1 (final) [v2]"}
	for _, title := range titles {
		id := GenerateID(title, map[string]bool{})
		for _, r := range id {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "id %q from title %q contains %q", id, title, r)
		}
	}
}

func TestGenerateIDCollisions(t *testing.T) {
	existing := map[string]bool{"notes": true}
	assert.Equal(t, "notes-1", GenerateID("Notes", existing))

	existing["notes-1"] = true
	assert.Equal(t, "notes-2", GenerateID("Notes", existing))

	// fallback ids collide too
	existing2 := map[string]bool{"untitled": true, "untitled-1": true}
	assert.Equal(t, "untitled-2", GenerateID("???", existing2))
}
