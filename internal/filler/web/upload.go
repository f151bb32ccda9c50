package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// uploadServer serves the template upload collaborators. They never
// touch the resolver or the materializer.
type uploadServer struct {
	path   pathBuilder
	build  builder
	logger log.Logger
}

// uploadTemplate saves the uploaded file as <type>.pptx under the
// templates directory, through a tmp file so a failed upload cannot
// clobber the current template.
func (u *uploadServer) uploadTemplate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		u.error(w, http.StatusBadRequest, fmt.Errorf("bad multipart form: %s", err))
		return
	}
	file, _, err := r.FormFile(fileField)
	if err != nil {
		u.error(w, http.StatusBadRequest, fmt.Errorf("file is required"))
		return
	}
	defer file.Close()

	templateType := r.FormValue("type")
	if templateType == "" {
		u.error(w, http.StatusBadRequest, fmt.Errorf("type is required"))
		return
	}

	filename := templateType + ".pptx"
	tmpPath := u.path.TmpFile(filename)
	dst, err := os.Create(tmpPath)
	if err == nil {
		_, err = io.Copy(dst, file)
		dst.Close()
	}
	if err == nil {
		err = os.Rename(tmpPath, u.path.Upload(filename))
	}
	if err != nil {
		level.Error(u.logger).Log("msg", "save template", "filename", filename, "err", err)
		u.error(w, http.StatusInternalServerError, fmt.Errorf("save template: %s", err))
		return
	}

	u.json(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"filename": filename,
	})
}

func (u *uploadServer) listTemplates(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(u.path.TemplatesDir())
	if err != nil {
		level.Error(u.logger).Log("msg", "list templates", "err", err)
		u.error(w, http.StatusInternalServerError, fmt.Errorf("list templates: %s", err))
		return
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	u.json(w, http.StatusOK, map[string]interface{}{"templates": names})
}

func ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", mimeJSON)
	w.Write([]byte(`{"ok":true}`))
}

func (u *uploadServer) json(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", mimeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (u *uploadServer) error(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", mimeJSON)
	w.WriteHeader(status)
	w.Write(u.build(err))
}
