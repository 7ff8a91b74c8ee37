package filestorage

import "mime/multipart"

// ImageStorage defines the interface for profile image storage. The rest of
// the application only ever holds the opaque reference returned by SaveImage;
// it never interprets image bytes.
type ImageStorage interface {
	// SaveImage stores an uploaded image and returns its stored reference.
	SaveImage(fileHeader *multipart.FileHeader, prefix string) (string, error)

	// DeleteImage removes a stored image by its reference. Deleting a
	// missing image is not an error.
	DeleteImage(ref string) error
}
