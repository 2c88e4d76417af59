package state

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"conti/internal/core"
)

// Seed is the fixed starting data loaded once at startup.
type Seed struct {
	Expenses   []core.Expense
	Partners   []core.Partner
	Categories []core.Category
}

// DefaultSeed returns the built-in starting data. Both sentinel entities
// are present so that reference repair after deletes has somewhere to land.
func DefaultSeed() Seed {
	return Seed{
		Partners: []core.Partner{
			{Name: core.UnassignedPartnerName, Share: 0},
		},
		Categories: []core.Category{
			{Name: "Food"},
			{Name: "Transport"},
			{Name: "Fixed Charges", Note: "rent, insurance, subscriptions"},
			{Name: core.FallbackCategoryName},
		},
	}
}

// SeedFromFiles loads seed partners and categories from text files under
// base, falling back to DefaultSeed entries when a file is missing or empty.
// Partner lines are "Name;Share", category lines "Name;Note"; the share and
// note are optional. Blank lines and lines starting with # are skipped.
func SeedFromFiles(base string) Seed {
	seed := Seed{}
	for _, line := range readLines(filepath.Join(base, "seed_partners.txt")) {
		name, rest := splitLine(line)
		share := 0
		if rest != "" {
			if v, err := strconv.Atoi(rest); err == nil {
				share = v
			}
		}
		seed.Partners = append(seed.Partners, core.Partner{Name: name, Share: share})
	}
	for _, line := range readLines(filepath.Join(base, "seed_categories.txt")) {
		name, note := splitLine(line)
		seed.Categories = append(seed.Categories, core.Category{Name: name, Note: note})
	}

	def := DefaultSeed()
	if len(seed.Partners) == 0 {
		seed.Partners = def.Partners
	}
	if len(seed.Categories) == 0 {
		seed.Categories = def.Categories
	}

	// The sentinels must exist regardless of what the files contain.
	if !hasPartner(seed.Partners, core.UnassignedPartnerName) {
		seed.Partners = append(seed.Partners, core.Partner{Name: core.UnassignedPartnerName})
	}
	if !hasCategory(seed.Categories, core.FallbackCategoryName) {
		seed.Categories = append(seed.Categories, core.Category{Name: core.FallbackCategoryName})
	}
	return seed
}

func splitLine(line string) (string, string) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

func hasPartner(ps []core.Partner, name string) bool {
	for _, p := range ps {
		if p.Name == name {
			return true
		}
	}
	return false
}

func hasCategory(cs []core.Category, name string) bool {
	for _, c := range cs {
		if c.Name == name {
			return true
		}
	}
	return false
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	seen := map[string]struct{}{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
