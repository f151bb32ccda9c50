package filler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/creocert/sheet-filler/internal/mapping"
	"github.com/creocert/sheet-filler/internal/workbook"
	"github.com/creocert/sheet-filler/internal/xlsx"
)

type fillInFunc func(ctx context.Context, templatePath string, book *workbook.Book, m mapping.Mapping) (io.Reader, error)

type path interface {
	Template() string
}

type parser interface {
	Type(filename string) (string, error)
}

type extractor interface {
	Book(data []byte) (*workbook.Book, error)
}

type service struct {
	path      path
	parser    parser
	extractor extractor
	fillIn    fillInFunc

	logger log.Logger
}

func NewService(
	path path,
	parser parser,
	extractor extractor,

	fillIn fillInFunc,

	logger log.Logger,
) Service {
	return &service{
		path:      path,
		parser:    parser,
		extractor: extractor,
		fillIn:    fillIn,
		logger:    logger,
	}
}

// FillIn validates req, splits the uploaded workbook into detail and
// grade rows and renders one output sheet per detail row from the
// server-side template. Generation is all-or-nothing: any failure
// discards the whole result.
func (s *service) FillIn(ctx context.Context, req Request) (res Response, err error) {
	logger := log.WithPrefix(s.logger, "method", "FillIn", "uuid", req.UUID)

	if len(req.Workbook) == 0 {
		level.Error(logger).Log("msg", "no upload")
		err = ErrNoFile
		return
	}
	if _, err = s.parser.Type(req.Filename); err != nil {
		level.Error(logger).Log("msg", "upload type", "filename", req.Filename, "err", err)
		err = &Error{Kind: KindInput, Err: err}
		return
	}
	m, err := mapping.Parse(req.Mapping)
	if err != nil {
		level.Error(logger).Log("msg", "mapping", "err", err)
		err = &Error{Kind: KindInput, Err: err}
		return
	}
	book, err := s.extractor.Book(req.Workbook)
	if err != nil {
		level.Error(logger).Log("msg", "extract rows", "err", err)
		err = &Error{Kind: KindInput, Err: err}
		return
	}

	templatePath := s.path.Template()
	if _, err = os.Stat(templatePath); err != nil {
		level.Error(logger).Log("msg", "template", "path", templatePath, "err", err)
		err = newError(KindTemplate, "template is not uploaded yet")
		return
	}

	result, err := s.fillIn(ctx, templatePath, book, m)
	if err != nil {
		level.Error(logger).Log("msg", "fill in template", "err", err)
		err = &Error{Kind: classify(err), Err: err}
		return
	}

	if res.Document, err = ioutil.ReadAll(result); err != nil {
		level.Error(logger).Log("msg", "read result", "err", err)
		err = newError(KindSave, "read result: %s", err)
		return
	}
	res.UUID = req.UUID
	res.UserID = req.UserID
	res.Filename = fmt.Sprintf("filled_multi_sheets_%s.xlsx", time.Now().Format("20060102_150405"))
	return
}

func classify(err error) Kind {
	var (
		templateErr *xlsx.TemplateError
		saveErr     *xlsx.SaveError
	)
	switch {
	case errors.As(err, &templateErr):
		return KindTemplate
	case errors.As(err, &saveErr):
		return KindSave
	}
	return KindRender
}
