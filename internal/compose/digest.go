package compose

import (
	"github.com/google/go-containerregistry/pkg/name"
)

// PinnedImage returns the repo digest in repoDigests that belongs to the
// same repository as image, e.g. "nginx:1.25" with
// "docker.io/library/nginx@sha256:..." gives that digest reference.
// It returns "" when image cannot be parsed or no digest matches.
func PinnedImage(image string, repoDigests []string) string {
	ref, err := name.ParseReference(image)
	if err != nil {
		return ""
	}
	if _, ok := ref.(name.Digest); ok {
		return image
	}
	repo := ref.Context().Name()
	for _, rd := range repoDigests {
		d, err := name.NewDigest(rd)
		if err != nil {
			continue
		}
		if d.Context().Name() == repo {
			return rd
		}
	}
	return ""
}
