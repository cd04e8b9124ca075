package catalog

import (
	"net/http"

	"MiniCart/pkg/kit"
)

type HTTPDeps = kit.RouterOptions

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := kit.NewRouter(deps)
	r.Mount("/", s.Routes())
	return r
}
