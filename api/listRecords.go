package api

import (
	"context"
	"encoding/json"

	"github.com/fulldump/box"
)

func listRecords(ctx context.Context) ([]json.RawMessage, error) {

	s := GetService(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")

	return s.List(collectionName)
}
