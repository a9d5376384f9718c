package validation

import "testing"

func TestRequired(t *testing.T) {
	if New().Required("name", "Ana").Valid() != true {
		t.Error("non-empty value should pass")
	}
	if New().Required("name", "   ").Valid() {
		t.Error("whitespace-only value should fail")
	}
}

func TestIntRange(t *testing.T) {
	if !New().IntRange("lead_score", 0, 0, 100).Valid() {
		t.Error("0 should be in range")
	}
	if !New().IntRange("lead_score", 100, 0, 100).Valid() {
		t.Error("100 should be in range")
	}
	if New().IntRange("lead_score", 101, 0, 100).Valid() {
		t.Error("101 should be out of range")
	}
	if New().IntRange("lead_score", -1, 0, 100).Valid() {
		t.Error("-1 should be out of range")
	}
}

func TestOneOf(t *testing.T) {
	statuses := []string{"new", "active", "qualified"}
	if !New().OneOf("status", "active", statuses).Valid() {
		t.Error("listed value should pass")
	}
	v := New().OneOf("status", "cliente", statuses)
	if v.Valid() {
		t.Error("unlisted value should fail")
	}
	if v.First() == "" {
		t.Error("expected an error message")
	}
}

func TestSlug(t *testing.T) {
	for _, good := range []string{"contact-us", "promo2025", "a"} {
		if !New().Slug("slug", good).Valid() {
			t.Errorf("%q should be a valid slug", good)
		}
	}
	for _, bad := range []string{"Contact Us", "promo_", "-promo", "ação"} {
		if New().Slug("slug", bad).Valid() {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

func TestEmail(t *testing.T) {
	if !New().Email("email", "ana@example.com").Valid() {
		t.Error("valid email rejected")
	}
	if New().Email("email", "not-an-email").Valid() {
		t.Error("invalid email accepted")
	}
	if !New().OptionalEmail("email", "").Valid() {
		t.Error("blank optional email should pass")
	}
	if New().OptionalEmail("email", "nope").Valid() {
		t.Error("present but invalid optional email should fail")
	}
}

func TestNoScriptTags(t *testing.T) {
	if New().NoScriptTags("notes", `<ScRiPt>alert(1)</script>`).Valid() {
		t.Error("script tag should be rejected")
	}
	if !New().NoScriptTags("notes", "ligar na sexta").Valid() {
		t.Error("plain text should pass")
	}
}

func TestChaining(t *testing.T) {
	v := New().
		Required("name", "").
		IntRange("lead_score", 500, 0, 100)
	if v.Valid() {
		t.Fatal("expected two errors")
	}
	if len(v.Errors()) != 2 {
		t.Errorf("got %d errors, want 2", len(v.Errors()))
	}
}
