package xlogdump

import "testing"

func TestNoopResolverAlwaysMisses(t *testing.T) {
	var r NoopResolver
	if _, ok := r.ResolveSpace(1); ok {
		t.Error("expected ResolveSpace to miss")
	}
	if _, ok := r.ResolveDB(1); ok {
		t.Error("expected ResolveDB to miss")
	}
	if _, ok := r.ResolveRel(1, 2); ok {
		t.Error("expected ResolveRel to miss")
	}
	if _, ok := r.AttrIter(1, 2); ok {
		t.Error("expected AttrIter to miss")
	}
}

func TestResolveNodeFallsBackToNumericOIDs(t *testing.T) {
	node := RelFileNode{SpcNode: 1, DBNode: 2, RelNode: 3}
	space, db, rel := resolveNode(nil, node)
	if space != "1" || db != "2" || rel != "3" {
		t.Errorf("resolveNode(nil, ...) = %q/%q/%q, want 1/2/3", space, db, rel)
	}
	space, db, rel = resolveNode(NoopResolver{}, node)
	if space != "1" || db != "2" || rel != "3" {
		t.Errorf("resolveNode(NoopResolver{}, ...) = %q/%q/%q, want 1/2/3", space, db, rel)
	}
}
