package faces

import (
	"encodefaces/models"
	"fmt"

	"github.com/Kagami/go-face"
)

// Recognizer computes face encodings with dlib. Not safe for concurrent use.
type Recognizer struct {
	rec *face.Recognizer
}

// New loads the dlib models from modelsDir. The directory must contain
// shape_predictor_5_face_landmarks.dat, dlib_face_recognition_resnet_model_v1.dat
// and, for CNN detection, mmod_human_face_detector.dat.
// jitters > 0 re-samples every face that many times when computing its encoding.
func New(modelsDir string, size int, padding float32, jitters int) (*Recognizer, error) {
	rec, err := face.NewRecognizerWithConfig(modelsDir, size, padding, jitters)
	if err != nil {
		return nil, fmt.Errorf("loading face models from %s: %w", modelsDir, err)
	}
	return &Recognizer{rec: rec}, nil
}

func (r *Recognizer) Close() {
	if r.rec != nil {
		r.rec.Close()
		r.rec = nil
	}
}

// Encode detects every face in a JPEG image and returns its box and encoding
func (r *Recognizer) Encode(imgData []byte, method models.DetectionMethod) (found []models.DetectedFace, err error) {
	var f []face.Face
	switch method {
	case models.DetectionCNN:
		f, err = r.rec.RecognizeCNN(imgData)
	case models.DetectionHOG:
		f, err = r.rec.Recognize(imgData)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownDetectionMethod, method)
	}
	if err != nil {
		return
	}
	return toDetected(f), nil
}

func toDetected(f []face.Face) (found []models.DetectedFace) {
	for _, cur := range f {
		found = append(found, models.DetectedFace{
			Rectangle: cur.Rectangle,
			Encoding:  models.Encoding(cur.Descriptor[:]),
		})
	}
	return
}
