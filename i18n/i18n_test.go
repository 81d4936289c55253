package i18n

import "testing"

func TestLoad_English(t *testing.T) {
	b, err := Load("en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("feed.noPropertiesFound"); got != "No properties found" {
		t.Fatalf("unexpected message: %q", got)
	}
	if b.RTL() {
		t.Fatal("english should not be RTL")
	}
}

func TestLoad_ArabicWithRegion(t *testing.T) {
	b, err := Load("ar-KW")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("filters.location"); got != "الموقع" {
		t.Fatalf("unexpected message: %q", got)
	}
	if !b.RTL() {
		t.Fatal("arabic should be RTL")
	}
}

func TestLoad_UnknownFallsBackToEnglish(t *testing.T) {
	b, err := Load("fr")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("login.email"); got != "Email" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestT_MissingKeyReturnsKey(t *testing.T) {
	b, err := Load("en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected key echo, got %q", got)
	}
}
