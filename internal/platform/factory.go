package platform

import (
	"github.com/aretw0/diary/pkg/core"
)

// New wires a Service over the repository that Init builds for uri.
//
//	svc, err := diary.New("./journals", diary.WithReadOnly(true))
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	return core.NewService(repo, o.logger), nil
}
