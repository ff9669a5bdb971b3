// Package api provides the HTTP API for the application
package api

import (
	"skillproof/internal/platform/config"
	"skillproof/internal/platform/logger"
	phttp "skillproof/internal/platform/net/http"
	"skillproof/internal/platform/store"

	"skillproof/internal/modkit"
	"skillproof/internal/modkit/httpkit"
	"skillproof/internal/modkit/module"
	"skillproof/internal/modkit/swaggerkit"

	credmod "skillproof/internal/services/api/credibility/module"
	metamod "skillproof/internal/services/api/meta/module"
	provmod "skillproof/internal/services/api/provenance/module"

	// evidence collaborator (owns the Reader and Access ports)
	evmod "skillproof/internal/services/evidence/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// evidence first so its ports can be injected into credibility
	evidence := evmod.New(deps)
	module.Register(evidence.Name(), evidence.Ports())
	ev := module.MustPortsAs[evmod.Ports](evidence.Name())

	credibility := credmod.New(deps, modkit.WithPorts(credmod.Ports{
		Reader: ev.Reader,
		Access: ev.Access,
	}))

	public := []module.Module{
		metamod.New(deps),
	}
	protected := []module.Module{
		evidence,
		credibility,
		provmod.New(deps),
	}

	// static token table stands in for the external auth service
	tokens := opt.Config.Prefix("CORE_API_").MayPairs("TOKENS")
	if len(tokens) == 0 {
		logger.Named("api").Warn().Msg("CORE_API_TOKENS is empty; every protected route will answer 401")
	}
	auth := httpkit.NewPortFunc(httpkit.StaticTokens(tokens))

	swaggerkit.Register(credmod.DocumentTiers)
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackFromConfig(opt.Config.Prefix("CORE_API_")))
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range public {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
		httpkit.Protected(api, auth, func(pr httpkit.Router) {
			for _, m := range protected {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(pr)
			}
		})
	})
}
