// Package photo extracts camera metadata from image bytes and applies the
// EXIF orientation before an image is drawn.
package photo

import (
	"bytes"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Exif holds the EXIF fields the lightbox shows.
type Exif struct {
	CameraMake  string
	CameraModel string
	DateTaken   *time.Time
	Orientation int
}

// Camera joins make and model, dropping the make when the model repeats it.
func (e Exif) Camera() string {
	switch {
	case e.CameraModel == "":
		return e.CameraMake
	case e.CameraMake == "" || strings.HasPrefix(e.CameraModel, e.CameraMake):
		return e.CameraModel
	default:
		return e.CameraMake + " " + e.CameraModel
	}
}

// ReadExif decodes EXIF data from image bytes. Missing or broken EXIF is not
// an error: the zero value with Orientation 1 is returned.
func ReadExif(data []byte) Exif {
	d := Exif{Orientation: 1}
	if len(data) == 0 {
		return d
	}
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return d
	}

	d.CameraMake = tagString(x, exif.Make)
	d.CameraModel = tagString(x, exif.Model)

	if dt, err := x.DateTime(); err == nil {
		d.DateTaken = &dt
	}

	if orient, err := x.Get(exif.Orientation); err == nil {
		if v, err := orient.Int(0); err == nil && v >= 1 && v <= 8 {
			d.Orientation = v
		}
	}
	return d
}

func tagString(x *exif.Exif, f exif.FieldName) string {
	tag, err := x.Get(f)
	if err != nil {
		return ""
	}
	var s string
	if tag.Format() == tiff.StringVal {
		s, _ = tag.StringVal()
	} else {
		s = tag.String()
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
