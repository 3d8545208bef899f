// Package service implements the resource collection contract: find-all,
// find-by-id, create, replace, merge and delete over a storage backend, plus
// required-field validation for create and replace.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SierraSoftworks/connor"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/google/uuid"

	"github.com/shelfdb/shelf/store"
	"github.com/shelfdb/shelf/utils"
)

var ErrResourceNotFound = errors.New("resource not found")

// ValidationError is a client fault: the payload is missing required fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Service struct {
	store     store.Storage
	resources map[string]*Resource
}

func NewService(st store.Storage, resources ...*Resource) *Service {
	s := &Service{
		store:     st,
		resources: map[string]*Resource{},
	}
	for _, r := range resources {
		s.resources[r.Name] = r
	}
	return s
}

func (s *Service) resource(name string) (*Resource, error) {
	r, exists := s.resources[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s', available resources [%s]",
			ErrResourceNotFound, name, strings.Join(utils.GetKeys(s.resources), " "))
	}
	return r, nil
}

func (s *Service) List(name string) ([]json.RawMessage, error) {
	if _, err := s.resource(name); err != nil {
		return nil, err
	}
	return s.store.List(name)
}

func (s *Service) Get(name, id string) (json.RawMessage, error) {
	if _, err := s.resource(name); err != nil {
		return nil, err
	}
	return s.store.Get(name, id)
}

// Create validates the record, assigns a fresh id when the caller did not
// supply one and stores it. The returned payload includes the id.
func (s *Service) Create(name string, record map[string]any) (json.RawMessage, error) {

	r, err := s.resource(name)
	if err != nil {
		return nil, err
	}

	if record == nil {
		record = map[string]any{}
	}

	if err := r.Validate(record); err != nil {
		return nil, err
	}

	id, _ := record["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	record["id"] = id

	doc, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	if err := s.store.Insert(name, id, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Replace substitutes the whole record. The path id always wins over any id
// in the body to avoid orphaning the stored record.
func (s *Service) Replace(name, id string, record map[string]any) (json.RawMessage, error) {

	r, err := s.resource(name)
	if err != nil {
		return nil, err
	}

	if record == nil {
		record = map[string]any{}
	}

	if err := r.Validate(record); err != nil {
		return nil, err
	}

	record["id"] = id

	doc, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	return s.store.Replace(name, id, doc)
}

// Merge overlays the patch fields onto the stored record (RFC 7386), fields
// not mentioned survive. Merge intentionally skips required-field validation,
// partial payloads are the whole point.
func (s *Service) Merge(name, id string, patch map[string]any) (json.RawMessage, error) {

	if _, err := s.resource(name); err != nil {
		return nil, err
	}

	if patch == nil {
		patch = map[string]any{}
	}

	// patching the id would desync the storage key
	patch["id"] = id

	diff, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}

	return s.store.Merge(name, id, diff)
}

func (s *Service) Delete(name, id string) (json.RawMessage, error) {
	if _, err := s.resource(name); err != nil {
		return nil, err
	}
	return s.store.Delete(name, id)
}

type Query struct {
	Filter map[string]any `json:"filter"`
	Skip   int64          `json:"skip"`
	Limit  int64          `json:"limit"` // 0 means no limit
}

// Find runs a fullscan with an optional connor filter, then skip/limit.
func (s *Service) Find(name string, query *Query) ([]json.RawMessage, error) {

	docs, err := s.List(name)
	if err != nil {
		return nil, err
	}

	hasFilter := len(query.Filter) > 0

	result := []json.RawMessage{}
	skip := query.Skip
	limit := query.Limit
	for _, doc := range docs {

		if hasFilter {
			record := map[string]any{}
			if err := jsonv2.Unmarshal(doc, &record); err != nil {
				return nil, fmt.Errorf("decode record: %w", err)
			}

			match, err := connor.Match(query.Filter, record)
			if err != nil {
				return nil, fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		result = append(result, doc)

		if limit > 0 && int64(len(result)) >= limit {
			break
		}
	}

	return result, nil
}
