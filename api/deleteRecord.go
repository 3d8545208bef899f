package api

import (
	"context"
	"encoding/json"

	"github.com/fulldump/box"
)

func deleteRecord(ctx context.Context) (json.RawMessage, error) {

	s := GetService(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	recordID := box.GetUrlParameter(ctx, "recordId")

	return s.Delete(collectionName, recordID)
}
