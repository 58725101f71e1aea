package processing

import (
	"encodefaces/db"
	"encodefaces/models"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// FaceEncoder finds faces in a JPEG image and computes an encoding for each of them
type FaceEncoder interface {
	Encode(imgData []byte, method models.DetectionMethod) ([]models.DetectedFace, error)
}

type Pipeline struct {
	Encoder     FaceEncoder
	Method      models.DetectionMethod
	Width       int
	JPEGQuality int
	// RunID tags the face index rows of this run
	RunID string
}

// Process encodes every face of every image under root. Images that cannot
// be loaded are logged and skipped, any other error stops the run.
func (p *Pipeline) Process(root string) (*models.Dataset, error) {
	slog.Info("quantifying faces...", "dataset", root, "method", p.Method)
	imagePaths, err := ListImages(root)
	if err != nil {
		return nil, fmt.Errorf("listing images in %s: %w", root, err)
	}

	result := models.NewDataset()
	for i, imagePath := range imagePaths {
		slog.Info(fmt.Sprintf("processing image %d/%d", i+1, len(imagePaths)), "path", imagePath)
		name := LabelFromPath(imagePath)

		start := time.Now()
		found, err := p.processOne(imagePath)
		var loadErr *ImageLoadError
		if errors.As(err, &loadErr) {
			slog.Warn("the image file was not properly loaded", "path", imagePath, "error", loadErr.Err)
			continue
		}
		if err != nil {
			return nil, err
		}

		for num, face := range found {
			result.Append(face.Encoding, name)
			if db.Instance == nil {
				continue
			}
			record := models.NewFace(p.RunID, name, imagePath, num, face)
			if err = record.Create(); err != nil {
				return nil, fmt.Errorf("saving face %d of %s: %w", num, imagePath, err)
			}
		}
		slog.Debug("image done", "path", imagePath, "name", name, "faces", len(found), "time", time.Since(start))
	}
	return result, nil
}

func (p *Pipeline) processOne(imagePath string) ([]models.DetectedFace, error) {
	img, err := ReadImage(imagePath, p.Width)
	if err != nil {
		return nil, err
	}
	imgData, err := EncodeJPEG(ToRGB(img), p.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("encoding %s for detection: %w", imagePath, err)
	}
	found, err := p.Encoder.Encode(imgData, p.Method)
	if err != nil {
		return nil, fmt.Errorf("detecting faces in %s: %w", imagePath, err)
	}
	return found, nil
}
