package http

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Uploads stores multipart file uploads under a static directory and hands
// back the URL path the router serves them at.
type Uploads struct {
	Dir     string
	BaseURL string
}

func NewUploads(dir, baseURL string) *Uploads {
	if baseURL == "" {
		baseURL = "/static"
	}

	return &Uploads{Dir: dir, BaseURL: baseURL}
}

// Save writes the uploaded file into the given subdirectory under a
// collision-free name and returns its public URL path.
func (u *Uploads) Save(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(u.Dir, subdir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return u.BaseURL + "/" + subdir + "/" + name, nil
}

// SaveOptional saves the named form file if the client sent one. A missing
// file is not an error; the returned URL is empty.
func (u *Uploads) SaveOptional(c *gin.Context, field, subdir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	return u.Save(c, file, subdir)
}
