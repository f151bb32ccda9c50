package filler

import (
	"context"
)

// Service fills the server-side template with uploaded rows.
type Service interface {
	FillIn(ctx context.Context, req Request) (res Response, err error)
}

// Info for fill in template.
type Request struct {
	UUID     string
	UserID   int
	Filename string
	Workbook []byte
	Mapping  string
}

type Response struct {
	UUID     string
	UserID   int
	Filename string
	Document []byte
}
