package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"
)

func createRecord(ctx context.Context, w http.ResponseWriter, record map[string]any) (json.RawMessage, error) {

	s := GetService(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	created, err := s.Create(collectionName, record)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return created, nil
}
