package models

import (
	"encodefaces/db"
	"encodefaces/utils"
	"errors"
	"fmt"
	"image"
	"strings"
)

type DetectionMethod string

const (
	DetectionHOG DetectionMethod = "hog"
	DetectionCNN DetectionMethod = "cnn"
)

var ErrUnknownDetectionMethod = errors.New("unknown detection method")

// ParseDetectionMethod accepts "hog" or "cnn" (case insensitive).
func ParseDetectionMethod(s string) (DetectionMethod, error) {
	switch m := DetectionMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case DetectionHOG, DetectionCNN:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (expected hog or cnn)", ErrUnknownDetectionMethod, s)
}

// Encoding is the 128-d face descriptor computed by dlib
type Encoding []float32

type DetectedFace struct {
	Rectangle image.Rectangle
	Encoding  Encoding
}

// Face is a row of the optional face index
type Face struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	RunID      string `gorm:"type:varchar(36);index"`
	Name       string `gorm:"type:varchar(300);index"`
	Path       string `gorm:"type:varchar(1024)"`
	Num        int
	Descriptor []byte `gorm:"type:blob"`
	// dlib reports negative coordinates for faces cut by the image border
	RectX1     int32
	RectY1     int32
	RectX2     int32
	RectY2     int32
}

func NewFace(runID, name, path string, num int, detected DetectedFace) Face {
	return Face{
		RunID:      runID,
		Name:       name,
		Path:       path,
		Num:        num,
		Descriptor: utils.Float32ArrayToByteArray(detected.Encoding),
		RectX1:     int32(detected.Rectangle.Min.X),
		RectY1:     int32(detected.Rectangle.Min.Y),
		RectX2:     int32(detected.Rectangle.Max.X),
		RectY2:     int32(detected.Rectangle.Max.Y),
	}
}

func (f *Face) Create() error {
	return db.Instance.Create(f).Error
}

func (f *Face) GetEncoding() Encoding {
	return utils.ByteArrayToFloat32Array(f.Descriptor)
}

func (f *Face) GetRectangle() image.Rectangle {
	return image.Rect(int(f.RectX1), int(f.RectY1), int(f.RectX2), int(f.RectY2))
}

// FacesForRun returns the index rows of a single run in insertion order
func FacesForRun(runID string) (result []Face, err error) {
	err = db.Instance.Where("run_id = ?", runID).Order("id ASC").Find(&result).Error
	return
}
