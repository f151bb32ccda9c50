package mq

import (
	"encoding/json"

	"github.com/creocert/sheet-filler/internal/filler"
)

// FillInTransport codes fill-in messages.
type FillInTransport struct {
}

func NewFillInTransport() *FillInTransport {
	return &FillInTransport{}
}

// DecodeRequest ...
func (t *FillInTransport) DecodeRequest(message []byte) (filler.Request, error) {
	var req request
	err := json.Unmarshal(message, &req)
	return filler.Request{
		UUID:     req.UUID,
		UserID:   req.UserID,
		Filename: req.Filename,
		Workbook: req.Workbook,
		Mapping:  req.Mapping,
	}, err
}

// EncodeResponse ...
func (t *FillInTransport) EncodeResponse(res filler.Response, err error) (message []byte) {
	payload := response{
		UUID:     res.UUID,
		UserID:   res.UserID,
		Filename: res.Filename,
		Document: res.Document,
	}
	if err != nil {
		payload.Message = err.Error()
		payload.Filename = ""
		payload.Document = nil
	}
	message, _ = json.Marshal(payload)
	return
}
