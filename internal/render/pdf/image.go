package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Decoders for background images. image.Decode picks them up by format.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"codeberg.org/go-pdf/fpdf"
	"github.com/rednotepro/rednote/internal/res"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const backgroundImageName = "slide-background"

// svgScale rasterises SVG backgrounds at twice the page size in points
const svgScale = 2

// registerBackground loads, decodes and registers the background image once
// per document. On failure it logs and returns "" so the slides still render
// on their background colour.
func (r *Renderer) registerBackground(pdf *fpdf.Fpdf, src string) string {
	if r.loader == nil {
		return ""
	}

	resource, err := r.loader.LoadImage(src)
	if err != nil {
		r.logger.Warn("failed to load background image", "err", err)
		return ""
	}

	img, err := decodeImage(resource)
	if err != nil {
		r.logger.Warn("failed to decode background image", "url", resource.URL, "err", err)
		return ""
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		r.logger.Warn("failed to encode background image", "err", err)
		return ""
	}

	pdf.RegisterImageOptionsReader(backgroundImageName, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if pdf.Err() {
		r.logger.Warn("failed to register background image", "err", pdf.Error())
		pdf.ClearError()
		return ""
	}

	b := img.Bounds()
	r.logger.Debug("registered background image", "width", b.Dx(), "height", b.Dy())
	return backgroundImageName
}

// decodeImage decodes raster formats with image.Decode and rasterises SVG
func decodeImage(resource *res.Resource) (image.Image, error) {
	if resource.MimeType == "image/svg+xml" {
		return rasterizeSVG(resource.Data, int(PageWidth*svgScale), int(PageHeight*svgScale))
	}

	img, _, err := image.Decode(resource.GetReader())
	if err != nil {
		return nil, err
	}
	return img, nil
}

// rasterizeSVG draws an SVG document stretched over a w×h canvas
func rasterizeSVG(data []byte, w, h int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return rgba, nil
}
