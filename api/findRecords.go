package api

import (
	"context"
	"encoding/json"

	"github.com/fulldump/box"

	"github.com/shelfdb/shelf/service"
)

func findRecords(ctx context.Context, query *service.Query) ([]json.RawMessage, error) {

	s := GetService(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	if query == nil {
		query = &service.Query{}
	}

	return s.Find(collectionName, query)
}
