package api

import (
	"github.com/fulldump/box"

	"github.com/shelfdb/shelf/service"
	"github.com/shelfdb/shelf/statics"
)

func Build(s *service.Service, staticsDir string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		injectService(s),
	)

	v1.Resource("/{collectionName}").
		WithActions(
			box.Get(listRecords),
			box.Post(createRecord),
			box.ActionPost(findRecords).WithName("find"),
		)

	v1.Resource("/{collectionName}/{recordId}").
		WithActions(
			box.Get(getRecord),
			box.Put(replaceRecord),
			box.Patch(patchRecord),
			box.Delete(deleteRecord),
		)

	// Mount statics
	b.Resource("/*").
		WithActions(
			box.Get(statics.ServeStatics(staticsDir)).WithName("serveStatics"),
		)

	return b
}
