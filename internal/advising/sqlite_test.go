package advising_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campusworks/advisor-agent/internal/advising"
)

func openSeededSQLite(t *testing.T) *advising.SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "advisor.db")
	s, err := advising.OpenSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Seed(context.Background(), testCatalog()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSQLiteStore_CatalogOrderAndLookup(t *testing.T) {
	s := openSeededSQLite(t)
	ctx := context.Background()

	catalog, err := s.Catalog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog) != 3 || catalog[0].Code != "CS101" || catalog[2].Code != "PHYS150" {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}

	c, ok, err := s.Lookup(ctx, "MATH210")
	if err != nil || !ok {
		t.Fatalf("lookup failed: %v ok=%v", err, ok)
	}
	if c.Credits != 3 {
		t.Fatalf("unexpected course: %+v", c)
	}
	if _, ok, err := s.Lookup(ctx, "XX999"); err != nil || ok {
		t.Fatalf("missing course should be (false, nil), got ok=%v err=%v", ok, err)
	}
}

func TestSQLiteStore_EnrollDropRoundTrip(t *testing.T) {
	s := openSeededSQLite(t)
	ctx := context.Background()

	if err := s.Enroll(ctx, "CS101"); err != nil {
		t.Fatal(err)
	}
	// Enrolling twice is a no-op at the store layer; the Planner reports
	// "already enrolled" before it gets here.
	if err := s.Enroll(ctx, "CS101"); err != nil {
		t.Fatal(err)
	}
	enrolled, err := s.Enrolled(ctx, "CS101")
	if err != nil || !enrolled {
		t.Fatalf("expected enrolled, got %v err=%v", enrolled, err)
	}

	sched, err := s.Schedule(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sched) != 1 || sched[0].Code != "CS101" {
		t.Fatalf("unexpected schedule: %+v", sched)
	}

	if err := s.Drop(ctx, "CS101"); err != nil {
		t.Fatal(err)
	}
	if err := s.Drop(ctx, "CS101"); err == nil || !strings.Contains(err.Error(), "not enrolled") {
		t.Fatalf("double drop should fail: %v", err)
	}
}

func TestSQLiteStore_EnrollUnknownCodeIsFault(t *testing.T) {
	s := openSeededSQLite(t)
	if err := s.Enroll(context.Background(), "XX999"); err == nil {
		t.Fatal("enrolling an uncataloged code at the store layer is a fault")
	}
}

func TestSQLiteStore_PlannerOnSQLite(t *testing.T) {
	s := openSeededSQLite(t)
	p := advising.NewPlanner(s, 18)
	ctx := context.Background()

	res, err := p.AddCourse(ctx, "CS101")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.TotalCredits != 4 {
		t.Fatalf("unexpected payload: %+v", res)
	}
	load, err := p.CreditLoad(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if load.TotalCredits != 4 || load.Remaining != 14 {
		t.Fatalf("unexpected load: %+v", load)
	}
}
