package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/diary/pkg/adapters/fs"
	"github.com/aretw0/diary/pkg/core"
)

// Init builds and initializes the repository for uri. The uri is
// adapter-specific; for "fs" it is the journal root directory.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := applyOptions(opts)

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	var err error

	switch o.adapter {
	case "fs":
		repo, err = initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func initFS(path string, o *options) (core.Repository, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	strict, _ := o.config["strict"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	debounce, _ := o.config["debounce"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	if path == "" {
		path = "."
	}

	repo := fs.NewRepository(fs.Config{
		Path:         path,
		MustExist:    mustExist,
		ReadOnly:     isReadOnly,
		Strict:       strict,
		Logger:       o.logger,
		SystemDir:    systemDir,
		Debounce:     debounce,
		ErrorHandler: errorHandler,
	})

	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			if o.logger != nil {
				o.logger.Warn("invalid serializer type ignored", "ext", ext, "expected", "fs.Serializer")
			}
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		repo.RegisterSerializer(ext, serializer)
	}

	return repo, nil
}
