package api

import (
	"context"
	"encoding/json"

	"github.com/fulldump/box"
)

// patchRecord skips required-field validation on purpose: partial payloads
// are the whole point of merge updates.
func patchRecord(ctx context.Context, patch map[string]any) (json.RawMessage, error) {

	s := GetService(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	recordID := box.GetUrlParameter(ctx, "recordId")

	return s.Merge(collectionName, recordID, patch)
}
