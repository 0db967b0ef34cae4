package accessly_test

import (
	"context"
	"testing"

	"github.com/caryssaperez/accessly"
)

func TestPolicy_ObjectType(t *testing.T) {
	p := accessly.New[uint]("invoice")
	if p.ObjectType() != "invoice" {
		t.Errorf("expected 'invoice', got '%s'", p.ObjectType())
	}
}

func TestPolicy_RegistrationMerges(t *testing.T) {
	p := accessly.New[uint]("user")
	p.GeneralActions(map[string]int{"edit": 2})
	p.GeneralActions(map[string]int{"destroy": 3, "edit": 20})

	grants := accessly.NewStaticGrants[uint]()
	grants.GrantGeneral(1, 20, "user")
	grants.GrantGeneral(1, 3, "user")
	in := p.Bind(1, grants)
	ctx := context.Background()

	// Both registrations survive the merge; "edit" resolves through the
	// last id registered for it.
	if ok, err := in.Evaluate(ctx, "edit", nil); err != nil || !ok {
		t.Errorf("expected edit to resolve via id 20, got %v, %v", ok, err)
	}
	if ok, err := in.Evaluate(ctx, "destroy", nil); err != nil || !ok {
		t.Errorf("expected destroy to survive the merge, got %v, %v", ok, err)
	}
}

func TestPolicy_SameNameBothArities(t *testing.T) {
	p := accessly.New[uint]("document")
	p.GeneralActions(map[string]int{"view": 1})
	p.ObjectActions(map[string]int{"view": 5})

	grants := accessly.NewStaticGrants[uint]()
	grants.GrantGeneral(1, 1, "document")
	grants.Grant(1, 5, "document", 42)
	in := p.Bind(1, grants)
	ctx := context.Background()

	if ok, err := in.Evaluate(ctx, "view", nil); err != nil || !ok {
		t.Errorf("general view should resolve via id 1, got %v, %v", ok, err)
	}
	if ok, err := in.Evaluate(ctx, "view", &testUser{id: 42}); err != nil || !ok {
		t.Errorf("object view should resolve via id 5, got %v, %v", ok, err)
	}
	if ok, err := in.Evaluate(ctx, "view", &testUser{id: 43}); err != nil || ok {
		t.Errorf("object view on an ungranted object should be false, got %v, %v", ok, err)
	}
}

func TestPolicy_OverrideReplacement(t *testing.T) {
	p := accessly.New[uint]("user")
	p.GeneralActions(map[string]int{"edit": 2})
	p.OverrideGeneral("edit", func(context.Context, uint) accessly.Decision {
		return accessly.Deny
	})
	p.OverrideGeneral("edit", func(context.Context, uint) accessly.Decision {
		return accessly.Allow
	})

	in := p.Bind(1, accessly.NewStaticGrants[uint]())
	if ok, err := in.Evaluate(context.Background(), "edit", nil); err != nil || !ok {
		t.Errorf("replacement override should win, got %v, %v", ok, err)
	}
}

func TestPolicy_OverrideRemoval(t *testing.T) {
	p := accessly.New[uint]("user")
	p.GeneralActions(map[string]int{"edit": 2})
	p.OverrideGeneral("edit", func(context.Context, uint) accessly.Decision {
		return accessly.Allow
	})
	p.OverrideGeneral("edit", nil)

	in := p.Bind(1, accessly.NewStaticGrants[uint]())
	if ok, err := in.Evaluate(context.Background(), "edit", nil); err != nil || ok {
		t.Errorf("removed override should fall back to the source, got %v, %v", ok, err)
	}
}

func TestPolicy_ExtendInheritsAndDetaches(t *testing.T) {
	base := accessly.New[uint]("user")
	base.GeneralActions(map[string]int{"edit": 2})
	base.OverrideGeneral("edit", func(context.Context, uint) accessly.Decision {
		return accessly.Allow
	})

	derived := base.Extend()
	ctx := context.Background()
	grants := accessly.NewStaticGrants[uint]()

	// Derived inherits the base override.
	if ok, _ := derived.Bind(1, grants).Evaluate(ctx, "edit", nil); !ok {
		t.Error("derived policy should inherit the allow override")
	}

	// Replacing on the derived policy leaves the base untouched.
	derived.OverrideGeneral("edit", func(context.Context, uint) accessly.Decision {
		return accessly.Deny
	})
	if ok, _ := derived.Bind(1, grants).Evaluate(ctx, "edit", nil); ok {
		t.Error("derived policy should use its replacement override")
	}
	if ok, _ := base.Bind(1, grants).Evaluate(ctx, "edit", nil); !ok {
		t.Error("base policy should keep its own override")
	}

	// New registrations on the derived policy do not leak back.
	derived.GeneralActions(map[string]int{"archive": 9})
	if _, err := base.Bind(1, grants).Evaluate(ctx, "archive", nil); err == nil {
		t.Error("base policy should not know actions registered on the derived policy")
	}
}

func TestPolicy_ExtendDeferSkipsBaseOverride(t *testing.T) {
	base := accessly.New[uint]("user")
	base.GeneralActions(map[string]int{"edit": 2})
	base.OverrideGeneral("edit", func(context.Context, uint) accessly.Decision {
		return accessly.Allow
	})

	derived := base.Extend()
	derived.OverrideGeneral("edit", func(context.Context, uint) accessly.Decision {
		return accessly.Defer
	})

	// The deferring replacement falls through to the grant source, not to
	// the base policy's allow.
	in := derived.Bind(1, accessly.NewStaticGrants[uint]())
	if ok, err := in.Evaluate(context.Background(), "edit", nil); err != nil || ok {
		t.Errorf("defer should reach the empty source and read false, got %v, %v", ok, err)
	}
}

func TestDecision_String(t *testing.T) {
	cases := map[accessly.Decision]string{
		accessly.Defer: "defer",
		accessly.Allow: "allow",
		accessly.Deny:  "deny",
	}
	for d, want := range cases {
		if d.String() != want {
			t.Errorf("expected %q, got %q", want, d.String())
		}
	}
}
