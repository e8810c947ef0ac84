package user

import "testing"

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RolePlayer, true},
		{RoleAdmin, true},
		{RoleSuperadmin, true},
		{Role(""), false},
		{Role("coach"), false},
		{Role("Admin"), false}, // case-sensitive on purpose
	}
	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestRoleIsAdmin(t *testing.T) {
	if RolePlayer.IsAdmin() {
		t.Error("player must never carry admin privileges")
	}
	if !RoleAdmin.IsAdmin() || !RoleSuperadmin.IsAdmin() {
		t.Error("admin and superadmin must carry admin privileges")
	}
}

func TestFormatPlayerID(t *testing.T) {
	if got := FormatPlayerID(100001); got != "P100001" {
		t.Errorf("FormatPlayerID(100001) = %q, want P100001", got)
	}
	if got := FormatPlayerID(0); got != "" {
		t.Errorf("FormatPlayerID(0) = %q, want empty", got)
	}
}
