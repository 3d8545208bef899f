package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fulldump/biff"

	"github.com/shelfdb/shelf/store"
)

func newTestService() *Service {
	return NewService(store.NewMemory(),
		&Resource{Name: "dogs", Required: []string{"name", "weight"}},
	)
}

func TestCreateAssignsID(t *testing.T) {

	s := newTestService()

	doc, err := s.Create("dogs", map[string]any{"name": "Rex", "weight": 40})
	biff.AssertNil(err)

	record := map[string]any{}
	biff.AssertNil(json.Unmarshal(doc, &record))

	id, _ := record["id"].(string)
	biff.AssertTrue(id != "")
	biff.AssertEqual(record["name"], "Rex")

	// round-trip
	stored, err := s.Get("dogs", id)
	biff.AssertNil(err)
	biff.AssertEqualJson(stored, record)
}

func TestCreateKeepsCallerID(t *testing.T) {

	s := newTestService()

	doc, err := s.Create("dogs", map[string]any{"id": "rex", "name": "Rex", "weight": 40})
	biff.AssertNil(err)
	biff.AssertEqualJson(doc, map[string]any{"id": "rex", "name": "Rex", "weight": 40})

	_, err = s.Create("dogs", map[string]any{"id": "rex", "name": "Other", "weight": 1})
	biff.AssertTrue(errors.Is(err, store.ErrExists))
}

func TestCreateValidation(t *testing.T) {

	s := newTestService()

	_, err := s.Create("dogs", map[string]any{"name": "Rex"})

	var validationError *ValidationError
	biff.AssertTrue(errors.As(err, &validationError))
	biff.AssertEqual(err.Error(), "must include name and weight")

	// falsy values do not pass the presence check
	_, err = s.Create("dogs", map[string]any{"name": "", "weight": float64(40)})
	biff.AssertTrue(errors.As(err, &validationError))

	_, err = s.Create("dogs", map[string]any{"name": "Rex", "weight": float64(0)})
	biff.AssertTrue(errors.As(err, &validationError))
}

func TestGeneratedIDsAreUnique(t *testing.T) {

	s := newTestService()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		doc, err := s.Create("dogs", map[string]any{"name": "Rex", "weight": 40})
		biff.AssertNil(err)

		record := map[string]any{}
		json.Unmarshal(doc, &record)
		id := record["id"].(string)

		biff.AssertEqual(seen[id], false)
		seen[id] = true
	}
}

func TestReplaceDiscardsOldFields(t *testing.T) {

	s := newTestService()

	s.Create("dogs", map[string]any{"id": "rex", "name": "Rex", "weight": 40, "color": "brown"})

	doc, err := s.Replace("dogs", "rex", map[string]any{"name": "Bob", "weight": 20})
	biff.AssertNil(err)
	biff.AssertEqualJson(doc, map[string]any{"id": "rex", "name": "Bob", "weight": 20})

	stored, _ := s.Get("dogs", "rex")
	biff.AssertEqualJson(stored, doc)
}

func TestReplacePathIDWins(t *testing.T) {

	s := newTestService()

	s.Create("dogs", map[string]any{"id": "rex", "name": "Rex", "weight": 40})

	doc, err := s.Replace("dogs", "rex", map[string]any{"id": "other", "name": "Rex", "weight": 40})
	biff.AssertNil(err)
	biff.AssertEqualJson(doc, map[string]any{"id": "rex", "name": "Rex", "weight": 40})
}

func TestReplaceValidates(t *testing.T) {

	s := newTestService()

	s.Create("dogs", map[string]any{"id": "rex", "name": "Rex", "weight": 40})

	_, err := s.Replace("dogs", "rex", map[string]any{"name": "Rex"})

	var validationError *ValidationError
	biff.AssertTrue(errors.As(err, &validationError))
}

func TestMergePreservesOtherFields(t *testing.T) {

	s := newTestService()

	s.Create("dogs", map[string]any{"id": "rex", "name": "Rex", "weight": 40})

	doc, err := s.Merge("dogs", "rex", map[string]any{"weight": 50})
	biff.AssertNil(err)
	biff.AssertEqualJson(doc, map[string]any{"id": "rex", "name": "Rex", "weight": 50})
}

func TestMergeDoesNotValidate(t *testing.T) {

	s := newTestService()

	s.Create("dogs", map[string]any{"id": "rex", "name": "Rex", "weight": 40})

	// a partial payload with no required fields is fine for merge
	doc, err := s.Merge("dogs", "rex", map[string]any{"color": "brown"})
	biff.AssertNil(err)
	biff.AssertEqualJson(doc, map[string]any{"id": "rex", "name": "Rex", "weight": 40, "color": "brown"})
}

func TestNotFoundPropagation(t *testing.T) {

	s := newTestService()

	_, err := s.Get("dogs", "nope")
	biff.AssertTrue(errors.Is(err, store.ErrNotFound))

	_, err = s.Replace("dogs", "nope", map[string]any{"name": "Rex", "weight": 40})
	biff.AssertTrue(errors.Is(err, store.ErrNotFound))

	_, err = s.Merge("dogs", "nope", map[string]any{"weight": 50})
	biff.AssertTrue(errors.Is(err, store.ErrNotFound))

	_, err = s.Delete("dogs", "nope")
	biff.AssertTrue(errors.Is(err, store.ErrNotFound))
}

func TestUnknownResource(t *testing.T) {

	s := newTestService()

	_, err := s.List("cats")
	biff.AssertTrue(errors.Is(err, ErrResourceNotFound))

	_, err = s.Create("cats", map[string]any{"name": "Phil"})
	biff.AssertTrue(errors.Is(err, ErrResourceNotFound))
}

func TestFindFilter(t *testing.T) {

	s := newTestService()

	s.Create("dogs", map[string]any{"id": "1", "name": "Rex", "weight": 40})
	s.Create("dogs", map[string]any{"id": "2", "name": "Bob", "weight": 20})
	s.Create("dogs", map[string]any{"id": "3", "name": "Rex", "weight": 15})

	docs, err := s.Find("dogs", &Query{Filter: map[string]any{"name": "Rex"}})
	biff.AssertNil(err)
	biff.AssertEqualJson(docs, []map[string]any{
		{"id": "1", "name": "Rex", "weight": 40},
		{"id": "3", "name": "Rex", "weight": 15},
	})

	// skip and limit apply after the filter
	docs, err = s.Find("dogs", &Query{Filter: map[string]any{"name": "Rex"}, Skip: 1, Limit: 1})
	biff.AssertNil(err)
	biff.AssertEqualJson(docs, []map[string]any{
		{"id": "3", "name": "Rex", "weight": 15},
	})
}

func TestFindWithoutFilterListsAll(t *testing.T) {

	s := newTestService()

	s.Create("dogs", map[string]any{"id": "1", "name": "Rex", "weight": 40})
	s.Create("dogs", map[string]any{"id": "2", "name": "Bob", "weight": 20})

	docs, err := s.Find("dogs", &Query{})
	biff.AssertNil(err)
	biff.AssertEqual(len(docs), 2)
}

func TestParseResources(t *testing.T) {

	resources, err := ParseResources("dogs:name,weight;hubs:name")
	biff.AssertNil(err)
	biff.AssertEqual(len(resources), 2)
	biff.AssertEqual(resources[0].Name, "dogs")
	biff.AssertEqual(resources[0].Required, []string{"name", "weight"})
	biff.AssertEqual(resources[1].Name, "hubs")
	biff.AssertEqual(resources[1].Required, []string{"name"})

	_, err = ParseResources("")
	biff.AssertNotNil(err)

	_, err = ParseResources(":name")
	biff.AssertNotNil(err)
}
