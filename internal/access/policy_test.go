package access

import "testing"

func TestCanAccess(t *testing.T) {
	cases := []struct {
		name    string
		id      Identity
		ownerID string
		want    bool
	}{
		{"admin on own resource", Identity{ID: "a", Role: RoleAdmin}, "a", true},
		{"admin on foreign resource", Identity{ID: "a", Role: RoleAdmin}, "b", true},
		{"editor on own resource", Identity{ID: "e", Role: RoleEditor}, "e", true},
		{"editor on foreign resource", Identity{ID: "e", Role: RoleEditor}, "b", false},
		{"viewer on own resource", Identity{ID: "v", Role: RoleViewer}, "v", true},
		{"viewer on foreign resource", Identity{ID: "v", Role: RoleViewer}, "b", false},
		{"empty identity id never matches", Identity{ID: "", Role: RoleEditor}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAccess(tc.id, tc.ownerID); got != tc.want {
				t.Fatalf("CanAccess(%+v, %q) = %v, want %v", tc.id, tc.ownerID, got, tc.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if got := ParseRole("admin"); got != RoleAdmin {
		t.Fatalf("expected Admin, got %s", got)
	}
	if got := ParseRole("Editor"); got != RoleEditor {
		t.Fatalf("expected Editor, got %s", got)
	}
	if got := ParseRole(""); got != RoleViewer {
		t.Fatalf("expected Viewer fallback, got %s", got)
	}
	if got := ParseRole("superuser"); got != RoleViewer {
		t.Fatalf("expected Viewer fallback for unknown role, got %s", got)
	}
}
