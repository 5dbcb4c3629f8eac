package domain

import "testing"

func TestRolePermissions_Moderator(t *testing.T) {
	p := RolePermissions(RoleModerator)

	granted := []struct {
		resource Resource
		action   Action
	}{
		{ResourceUsers, ActionView},
		{ResourceUsers, ActionEdit},
		{ResourceMessages, ActionView},
		{ResourceMessages, ActionDelete},
		{ResourceRooms, ActionView},
		{ResourceReports, ActionView},
		{ResourceReports, ActionManage},
	}
	for _, g := range granted {
		if !p.Allows(g.resource, g.action) {
			t.Errorf("moderator should be allowed %s:%s", g.resource, g.action)
		}
	}

	denied := []struct {
		resource Resource
		action   Action
	}{
		{ResourceUsers, ActionDelete},
		{ResourceRooms, ActionEdit},
		{ResourceSystem, ActionView},
		{ResourceSystem, ActionEdit},
		{ResourceAdmins, ActionView},
		{ResourceAdmins, ActionManage},
	}
	for _, d := range denied {
		if p.Allows(d.resource, d.action) {
			t.Errorf("moderator should be denied %s:%s", d.resource, d.action)
		}
	}
}

func TestRolePermissions_ViewerIsReadOnly(t *testing.T) {
	p := RolePermissions(RoleViewer)

	for _, r := range []Resource{ResourceUsers, ResourceMessages, ResourceRooms, ResourceReports} {
		if !p.Allows(r, ActionView) {
			t.Errorf("viewer should be allowed %s:view", r)
		}
	}
	for _, a := range []Action{ActionEdit, ActionDelete, ActionManage} {
		for _, r := range []Resource{ResourceUsers, ResourceMessages, ResourceRooms, ResourceReports, ResourceSystem, ResourceAdmins} {
			if p.Allows(r, a) {
				t.Errorf("viewer should be denied %s:%s", r, a)
			}
		}
	}
}

func TestRolePermissions_UnknownRoleFallsBackToViewer(t *testing.T) {
	p := RolePermissions(Role("intern"))
	if !p.Allows(ResourceUsers, ActionView) {
		t.Fatalf("unknown role should still read users")
	}
	if p.Allows(ResourceUsers, ActionEdit) {
		t.Fatalf("unknown role must not edit users")
	}
}

func TestAllows_UnknownPairsAreDenied(t *testing.T) {
	p := RolePermissions(RoleSuperAdmin)

	if p.Allows(Resource("billing"), ActionView) {
		t.Fatalf("unknown resource must be denied")
	}
	if p.Allows(ResourceMessages, ActionEdit) {
		t.Fatalf("messages have no edit action")
	}
	if p.Allows(ResourceUsers, Action("export")) {
		t.Fatalf("unknown action must be denied")
	}
}
