package service

import (
	"context"
	"testing"

	"docvault/internal/domain/models"
)

func newSearch(fx *fixtures) *searchEngine {
	return NewSearchEngine(
		&fakeCompanyRepo{fx: fx},
		&fakeDepartmentRepo{fx: fx},
		&fakeFolderRepo{fx: fx},
		&fakeDocumentRepo{fx: fx},
		testLogger(),
	).(*searchEngine)
}

// searchFixtures seeds one hit of every type for the term "alpha".
func searchFixtures() *fixtures {
	fx := newFixtures()
	fx.addCompany(1, "Alpha Industries")
	fx.addCompany(2, "Beta Corp")
	fx.addDepartment(10, 1, "Alpha Ops")
	fx.addDepartment(20, 2, "Logistics")
	fx.addFolder(100, 2, 20, "alpha shipments")
	fx.addDocument(1000, 2, id64(20), id64(100), "alpha-manifest")
	return fx
}

func TestSearchEmptyTermReturnsNothing(t *testing.T) {
	eng := newSearch(searchFixtures())

	for _, term := range []string{"", "   ", "\t"} {
		items, err := eng.Search(context.Background(), openContext(), term)
		if err != nil {
			t.Fatalf("Search(%q): %v", term, err)
		}
		if len(items) != 0 {
			t.Errorf("Search(%q) = %v, want empty", term, itemNames(items))
		}
	}
}

// Hits arrive grouped by type in a fixed order regardless of names:
// companies, then departments, then folders, then documents.
func TestSearchFixedTypeOrdering(t *testing.T) {
	eng := newSearch(searchFixtures())

	items, err := eng.Search(context.Background(), openContext(), "alpha")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	assertNames(t, items, "Alpha Industries", "Alpha Ops", "alpha shipments", "alpha-manifest")

	wantTypes := []models.ItemType{models.ItemCompany, models.ItemDepartment, models.ItemFolder, models.ItemDocument}
	for i, it := range items {
		if it.Type != wantTypes[i] {
			t.Errorf("item %d type = %q, want %q", i, it.Type, wantTypes[i])
		}
	}
}

func TestSearchBreadcrumbs(t *testing.T) {
	eng := newSearch(searchFixtures())

	items, err := eng.Search(context.Background(), openContext(), "alpha")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	want := map[string]string{
		"Alpha Industries": "Alpha Industries",
		"Alpha Ops":        "Alpha Industries → Alpha Ops",
		"alpha shipments":  "Beta Corp → Logistics → alpha shipments",
		"alpha-manifest":   "Beta Corp → Logistics → alpha shipments → alpha-manifest",
	}
	for _, it := range items {
		if it.Location != want[it.Name] {
			t.Errorf("location for %q = %q, want %q", it.Name, it.Location, want[it.Name])
		}
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	eng := newSearch(searchFixtures())

	items, err := eng.Search(context.Background(), openContext(), "ALPHA")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("got %v, want 4 hits", itemNames(items))
	}
}

func TestSearchAppliesRestrictions(t *testing.T) {
	eng := newSearch(searchFixtures())

	pctx := openContext()
	pctx.Companies = models.RestrictTo(1)

	items, err := eng.Search(context.Background(), pctx, "alpha")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Company 2's folder and document fall away with the restriction.
	assertNames(t, items, "Alpha Industries", "Alpha Ops")
}

func TestSearchDenyAllDocumentTypesSkipsDocuments(t *testing.T) {
	eng := newSearch(searchFixtures())

	pctx := openContext()
	pctx.DocumentTypes = models.DenyEverything()

	items, err := eng.Search(context.Background(), pctx, "alpha")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	assertNames(t, items, "Alpha Industries", "Alpha Ops", "alpha shipments")
}

func TestSearchWithoutViewCapability(t *testing.T) {
	eng := newSearch(searchFixtures())

	pctx := openContext()
	pctx.Capabilities = models.CapabilitySet{}

	items, err := eng.Search(context.Background(), pctx, "alpha")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %v, want empty", itemNames(items))
	}
}

func TestSearchSkipsInactiveAncestors(t *testing.T) {
	fx := searchFixtures()
	fx.addInactiveCompany(2, "Beta Corp")
	eng := newSearch(fx)

	items, err := eng.Search(context.Background(), openContext(), "alpha")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	assertNames(t, items, "Alpha Industries", "Alpha Ops")
}
