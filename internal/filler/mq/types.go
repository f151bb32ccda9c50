package mq

type request struct {
	UUID     string `json:"uuid"`
	UserID   int    `json:"user_id"`
	Filename string `json:"filename"`
	Workbook []byte `json:"workbook"`
	Mapping  string `json:"mapping,omitempty"`
}

type response struct {
	UUID     string `json:"uuid"`
	UserID   int    `json:"user_id"`
	Filename string `json:"filename,omitempty"`
	Document []byte `json:"document,omitempty"`
	Message  string `json:"message,omitempty"`
}
