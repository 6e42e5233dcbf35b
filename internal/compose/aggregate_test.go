package compose

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/go-cmp/cmp"
)

func fragment(name, image string, nets []string, vols ...string) *Fragment {
	svc := NewMapping()
	svc.Set("image", String(image))
	f := &Fragment{
		Name:     name,
		Service:  svc,
		Networks: mapset.NewSet(nets...),
		Volumes:  map[string]VolumeResource{},
	}
	for _, v := range vols {
		f.Volumes[v] = VolumeResource{External: true}
	}
	return f
}

func TestAggregatorUnion(t *testing.T) {
	a := NewAggregator()
	a.Add(fragment("web", "nginx", []string{"frontend"}, "static"))
	a.Add(fragment("db", "postgres", []string{"backend"}, "pgdata"))
	a.Add(fragment("api", "api", []string{"frontend", "backend"}))

	doc := a.Document(nil)
	if diff := cmp.Diff([]string{"web", "db", "api"}, doc.ServiceNames); diff != "" {
		t.Fatalf("service order mismatch (-want +got):\n%s", diff)
	}
	if !a.NetworkNames().Equal(mapset.NewSet("frontend", "backend")) {
		t.Fatalf("unexpected network union %v", a.NetworkNames().ToSlice())
	}
	want := map[string]VolumeResource{"static": {External: true}, "pgdata": {External: true}}
	if diff := cmp.Diff(want, doc.Volumes); diff != "" {
		t.Fatalf("volume union mismatch (-want +got):\n%s", diff)
	}
	if doc.Networks != nil {
		t.Fatalf("expected networks section omitted")
	}
}

func TestAggregatorLastWriteWins(t *testing.T) {
	a := NewAggregator()
	a.Add(fragment("web", "nginx:1", nil))
	a.Add(fragment("db", "postgres", nil))
	a.Add(fragment("web", "nginx:2", nil))

	doc := a.Document(nil)
	if a.Len() != 2 {
		t.Fatalf("expected 2 services, got %d", a.Len())
	}
	if diff := cmp.Diff([]string{"web", "db"}, doc.ServiceNames); diff != "" {
		t.Fatalf("first position should be kept (-want +got):\n%s", diff)
	}
	if doc.Service("web").Get("image").Scalar() != "nginx:2" {
		t.Fatalf("expected last write to win, got %v", doc.Service("web").Get("image").Scalar())
	}
}

func TestAggregatorEmptySections(t *testing.T) {
	a := NewAggregator()
	a.Add(fragment("solo", "busybox", nil))
	doc := a.Document(map[string]Value{})
	if doc.Networks != nil || doc.Volumes != nil {
		t.Fatalf("empty sections should be nil")
	}
	doc = a.Document(map[string]Value{"frontend": Map(mappingOf("external", Bool(true)))})
	if len(doc.Networks) != 1 {
		t.Fatalf("expected networks section, got %v", doc.Networks)
	}
}
