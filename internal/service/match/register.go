package match

import (
	"google.golang.org/grpc"

	"github.com/oggyb/skillswap/internal/app"
	"github.com/oggyb/skillswap/internal/rpc"
)

// Registrar ties the Match service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(s grpc.ServiceRegistrar) {
	rpc.RegisterMatchServer(s, NewMatchService(r.appCtx))
}
