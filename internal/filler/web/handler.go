package web

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/creocert/sheet-filler/internal/filler"
)

const (
	generatePath       = "/api/generate"
	uploadTemplatePath = "/api/upload-template"
	templatesPath      = "/api/templates"
	pingPath           = "/api/ping"
	staticPrefix       = "/uploads/templates/"
)

type builder func(err error) []byte

type pathBuilder interface {
	Upload(name string) string
	TmpFile(name string) string
	TemplatesDir() string
}

// NewHandler mounts the generate endpoint and the template upload
// collaborators.
func NewHandler(
	svc filler.Service,
	build builder,
	path pathBuilder,
	uuidFunc func() string,
	logger log.Logger,
) http.Handler {
	transport := NewGenerateTransport(uuidFunc)
	generate := kithttp.NewServer(
		makeGenerateEndpoint(svc),
		transport.DecodeRequest,
		transport.EncodeResponse,
		kithttp.ServerErrorEncoder(newErrorEncoder(build)),
	)

	u := &uploadServer{
		path:   path,
		build:  build,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.Handle(generatePath, post(generate))
	mux.Handle(uploadTemplatePath, post(http.HandlerFunc(u.uploadTemplate)))
	mux.HandleFunc(templatesPath, u.listTemplates)
	mux.HandleFunc(pingPath, ping)
	mux.Handle(staticPrefix, http.StripPrefix(staticPrefix, http.FileServer(http.Dir(path.TemplatesDir()))))
	return mux
}

func makeGenerateEndpoint(svc filler.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(filler.Request)
		return svc.FillIn(ctx, req)
	}
}

func post(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}
