package markers

import (
	"testing"
)

func TestRegions(t *testing.T) {
	content := `line 1
<<<<<<< HEAD
local version
||||||| merged common ancestors
base version
=======
remote version
>>>>>>> original
line 2
<<<<<<< CURRENT
another local change
=======
another remote change
>>>>>>> NEW
line 3`

	regions := Regions(content)

	if len(regions) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(regions))
	}

	if regions[0].StartLine != 2 {
		t.Errorf("First region start line = %d, want 2", regions[0].StartLine)
	}
	if regions[0].EndLine != 8 {
		t.Errorf("First region end line = %d, want 8", regions[0].EndLine)
	}

	if regions[1].StartLine != 10 {
		t.Errorf("Second region start line = %d, want 10", regions[1].StartLine)
	}
	if regions[1].EndLine != 14 {
		t.Errorf("Second region end line = %d, want 14", regions[1].EndLine)
	}
}

func TestRegions_NoConflicts(t *testing.T) {
	content := "line 1\nline 2\nline 3\n"

	regions := Regions(content)

	if len(regions) != 0 {
		t.Errorf("Expected 0 regions, got %d", len(regions))
	}
}
