package state

import (
	"os"
	"path/filepath"
	"testing"

	"conti/internal/core"
)

func TestDefaultSeedContainsSentinels(t *testing.T) {
	seed := DefaultSeed()
	if !hasPartner(seed.Partners, core.UnassignedPartnerName) {
		t.Fatal("default seed missing unassigned partner")
	}
	if !hasCategory(seed.Categories, core.FallbackCategoryName) {
		t.Fatal("default seed missing fallback category")
	}
}

func TestSeedFromFiles(t *testing.T) {
	dir := t.TempDir()
	partners := "# comment\nAnna;60\nBruno;40\n\nAnna;60\n"
	categories := "Groceries\nUtilities;power and water\n"
	if err := os.WriteFile(filepath.Join(dir, "seed_partners.txt"), []byte(partners), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "seed_categories.txt"), []byte(categories), 0644); err != nil {
		t.Fatal(err)
	}

	seed := SeedFromFiles(dir)

	// Two from the file plus the appended sentinel; the duplicate line is dropped.
	if len(seed.Partners) != 3 {
		t.Fatalf("expected 3 partners, got %d: %+v", len(seed.Partners), seed.Partners)
	}
	if seed.Partners[0].Name != "Anna" || seed.Partners[0].Share != 60 {
		t.Fatalf("unexpected first partner: %+v", seed.Partners[0])
	}
	if !hasPartner(seed.Partners, core.UnassignedPartnerName) {
		t.Fatal("sentinel partner not appended")
	}
	if len(seed.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(seed.Categories))
	}
	if seed.Categories[1].Note != "power and water" {
		t.Fatalf("category note not parsed: %+v", seed.Categories[1])
	}
	if !hasCategory(seed.Categories, core.FallbackCategoryName) {
		t.Fatal("sentinel category not appended")
	}
}

func TestSeedFromFilesMissingDirFallsBack(t *testing.T) {
	seed := SeedFromFiles(filepath.Join(t.TempDir(), "nope"))
	def := DefaultSeed()
	if len(seed.Partners) != len(def.Partners) || len(seed.Categories) != len(def.Categories) {
		t.Fatalf("expected default seed, got %+v", seed)
	}
}
