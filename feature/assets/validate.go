package assets

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"catalog-sync/core/utils"
)

// maxPhotoBytes caps individual photo uploads.
const maxPhotoBytes = 10 << 20 // 10 MiB

// extensionByType maps accepted sniffed content types to the canonical
// extension used in stored paths.
var extensionByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Rejection explains why one file of a batch was not committed.
type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Upload is one file of an incoming photo batch.
type Upload struct {
	Name    string
	Content []byte
}

// validate sniffs the upload's real content type and enforces the size cap.
// It returns the canonical extension for accepted files.
func validate(u Upload) (string, *Rejection) {
	if len(u.Content) == 0 {
		return "", &Rejection{Name: u.Name, Reason: "empty file"}
	}
	if int64(len(u.Content)) > maxPhotoBytes {
		return "", &Rejection{Name: u.Name, Reason: fmt.Sprintf("file exceeds %d bytes", maxPhotoBytes)}
	}

	// Sniff the actual bytes rather than trusting the client's extension.
	contentType := http.DetectContentType(u.Content)
	ext, ok := extensionByType[contentType]
	if !ok {
		return "", &Rejection{Name: u.Name, Reason: fmt.Sprintf("unsupported content type %q", contentType)}
	}
	return ext, nil
}

// photoPath derives the deterministic store path for an uploaded photo.
// The original file name is slugified so the same upload always lands on
// the same path, and the extension comes from the sniffed type.
func photoPath(propertyID string, u Upload, ext string) string {
	base := strings.TrimSuffix(path.Base(u.Name), path.Ext(u.Name))
	slug := utils.Slugify(base)
	if slug == "" {
		slug = "photo"
	}
	return fmt.Sprintf("properties/%s/%s%s", propertyID, slug, ext)
}
