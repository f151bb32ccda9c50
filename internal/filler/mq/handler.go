package mq

import (
	"context"

	"github.com/creocert/sheet-filler/internal/filler"
	"github.com/creocert/sheet-filler/internal/kafka"
)

type fillInServe struct {
	svc       filler.Service
	transport *FillInTransport
	publish   kafka.Publish
}

func (s *fillInServe) Handle(ctx context.Context, message []byte) {
	req, err := s.transport.DecodeRequest(message)

	var res filler.Response
	if err == nil {
		res, err = s.svc.FillIn(ctx, req)
	}

	s.publish(s.transport.EncodeResponse(res, err))
}

// NewFillInHandler ...
func NewFillInHandler(
	svc filler.Service,
	transport *FillInTransport,
	publish kafka.Publish,
) kafka.Handler {
	s := &fillInServe{
		svc:       svc,
		transport: transport,
		publish:   publish,
	}

	return s.Handle
}
