package api

import (
	"context"
	"encoding/json"

	"github.com/fulldump/box"
)

func replaceRecord(ctx context.Context, record map[string]any) (json.RawMessage, error) {

	s := GetService(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	recordID := box.GetUrlParameter(ctx, "recordId")

	return s.Replace(collectionName, recordID, record)
}
