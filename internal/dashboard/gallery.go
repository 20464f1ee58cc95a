package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/ziadkadry99/marsdash/internal/nasa"
)

// GalleryContainerID is the id of the element holding a rendered gallery.
const GalleryContainerID = "image-gallery-container"

// NoPhotosMarkup is rendered in place of a gallery with no photos.
const NoPhotosMarkup = "<p>No photos available for this rover.</p>"

var galleryTmpl = template.Must(template.New("gallery").Parse(`<div class="image-gallery">
	<p>Name: {{.Name}}</p>
	<p>Launch date: {{.Rover.LaunchDate}}</p>
	<p>Landing date: {{.Rover.LandingDate}}</p>
	<p>Status: {{.Rover.Status}}</p>
	<div class="photo-grid">
	{{- range .Photos}}
		<div class="photo-details-container">
			<p>Date photo were taken: {{.EarthDate}}</p>
			<img class="photo" alt="Photo taken by {{$.Name}} rover" src="{{.ImgSrc}}" loading="lazy">
		</div>
	{{- end}}
	</div>
</div>`))

type galleryData struct {
	Name   string
	Rover  nasa.RoverInfo
	Photos []nasa.Photo
}

// RenderGallery renders the gallery fragment for rover. The first photo's
// rover info is used for the header.
func RenderGallery(rover string, photos []nasa.Photo) (string, error) {
	if len(photos) == 0 {
		return NoPhotosMarkup, nil
	}
	var buf bytes.Buffer
	err := galleryTmpl.Execute(&buf, galleryData{
		Name:   rover,
		Rover:  photos[0].Rover,
		Photos: photos,
	})
	if err != nil {
		return "", fmt.Errorf("rendering gallery: %w", err)
	}
	return buf.String(), nil
}

// Gallery loads and shows a rover's photos in a Document.
type Gallery struct {
	doc   *Document
	store *Store
	fetch Op[PhotoQuery]
	sol   int

	// ImageGallery is the loading-wrapped gallery build.
	ImageGallery Op[string]

	render func(rover string, photos []nasa.Photo) (string, error)
}

// NewGallery wires a Gallery. fetch is wrapped with WithErrorMarkup and the
// whole build with WithLoading.
func NewGallery(doc *Document, store *Store, fetch Op[PhotoQuery], sol int) *Gallery {
	g := &Gallery{
		doc:    doc,
		store:  store,
		fetch:  WithErrorMarkup(fetch),
		sol:    sol,
		render: RenderGallery,
	}
	g.ImageGallery = WithLoading[string](doc, g.build)
	return g
}

// build clears the current gallery, fetches, then renders whatever photos
// the store holds afterwards.
//
// A failed fetch is swallowed by the error wrapper: the fallback markup is
// discarded and the previous photos are rendered again.
func (g *Gallery) build(ctx context.Context, rover string) (string, error) {
	if g.doc.Exists(GalleryContainerID) {
		if err := g.doc.SetInnerHTML(GalleryContainerID, ""); err != nil {
			return "", err
		}
	}

	_, _ = g.fetch(ctx, PhotoQuery{Rover: rover, Sol: g.sol})

	return g.render(rover, g.store.Snapshot().Photos())
}

// ShowRoverInformation builds the gallery for rover and appends it to #root
// in a new gallery container.
//
// When the fetch fails no repaint happens, so the emptied container of the
// previous gallery stays in place and the new one is appended after it.
func (g *Gallery) ShowRoverInformation(ctx context.Context, rover string) error {
	markup, err := g.ImageGallery(ctx, rover)
	if err != nil {
		return err
	}
	_, err = g.doc.AppendElement(RootID, "div", map[string]string{"id": GalleryContainerID}, markup)
	return err
}
