package web

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/creocert/sheet-filler/internal/filler"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeJSON = "application/json; charset=utf-8"

	fileField    = "file"
	mappingField = "mapping"

	maxUploadBytes = 32 << 20
)

// GenerateTransport codes /api/generate requests.
type GenerateTransport struct {
	uuidFunc func() string
}

func NewGenerateTransport(
	uuidFunc func() string,
) *GenerateTransport {
	return &GenerateTransport{
		uuidFunc: uuidFunc,
	}
}

// DecodeRequest reads the multipart form: the uploaded workbook and the
// optional mapping json.
func (t *GenerateTransport) DecodeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, &filler.Error{Kind: filler.KindInput, Err: fmt.Errorf("bad multipart form: %s", err)}
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		return nil, filler.ErrNoFile
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, &filler.Error{Kind: filler.KindInput, Err: fmt.Errorf("read upload: %s", err)}
	}

	return filler.Request{
		UUID:     t.uuidFunc(),
		Filename: header.Filename,
		Workbook: data,
		Mapping:  r.FormValue(mappingField),
	}, nil
}

// EncodeResponse writes the generated workbook as an attachment.
func (t *GenerateTransport) EncodeResponse(_ context.Context, w http.ResponseWriter, resp interface{}) error {
	res := resp.(filler.Response)
	w.Header().Set("Content-Type", mimeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", res.Filename))
	w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
	_, err := w.Write(res.Document)
	return err
}

func newErrorEncoder(build builder) func(ctx context.Context, err error, w http.ResponseWriter) {
	return func(_ context.Context, err error, w http.ResponseWriter) {
		w.Header().Set("Content-Type", mimeJSON)
		w.WriteHeader(filler.StatusCode(err))
		w.Write(build(err))
	}
}
