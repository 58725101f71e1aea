package processing

import (
	"bytes"
	"encodefaces/db"
	"encodefaces/models"
	"errors"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lmittmann/tint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEncoder hands out a fixed number of faces per call, in call order
type fakeEncoder struct {
	facesPerCall []int
	calls        int
	sizes        []image.Point
	methods      []models.DetectionMethod
	err          error
}

func (e *fakeEncoder) Encode(imgData []byte, method models.DetectionMethod) ([]models.DetectedFace, error) {
	if e.err != nil {
		return nil, e.err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imgData))
	if err != nil {
		return nil, err
	}
	e.sizes = append(e.sizes, image.Pt(cfg.Width, cfg.Height))
	e.methods = append(e.methods, method)

	n := 0
	if e.calls < len(e.facesPerCall) {
		n = e.facesPerCall[e.calls]
	}
	e.calls++
	result := make([]models.DetectedFace, n)
	for i := range result {
		result[i] = models.DetectedFace{
			Rectangle: image.Rect(i*10, 0, i*10+10, 10),
			Encoding:  models.Encoding{float32(e.calls), float32(i)},
		}
	}
	return result, nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	old := slog.Default()
	slog.SetDefault(slog.New(tint.NewHandler(buf, &tint.Options{NoColor: true, Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return buf
}

func newPipeline(enc FaceEncoder) *Pipeline {
	return &Pipeline{
		Encoder:     enc,
		Method:      models.DetectionHOG,
		Width:       1000,
		JPEGQuality: 90,
		RunID:       "test-run",
	}
}

func TestProcess_Empty(t *testing.T) {
	captureLogs(t)
	enc := &fakeEncoder{}
	ds, err := newPipeline(enc).Process(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, ds.Encodings)
	assert.Empty(t, ds.Names)
	assert.Equal(t, 0, enc.calls)
}

func TestProcess_SingleFace(t *testing.T) {
	captureLogs(t)
	root := t.TempDir()
	writeJPEG(t, filepath.Join(root, "chris_hadfield", "01.jpg"), 200, 100)

	enc := &fakeEncoder{facesPerCall: []int{1}}
	ds, err := newPipeline(enc).Process(root)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, []string{"chris_hadfield"}, ds.Names)
	assert.Equal(t, models.Encoding{1, 0}, ds.Encodings[0])
	assert.Equal(t, []image.Point{image.Pt(1000, 500)}, enc.sizes)
	assert.Equal(t, []models.DetectionMethod{models.DetectionHOG}, enc.methods)
}

func TestProcess_MultipleImagesStayAligned(t *testing.T) {
	captureLogs(t)
	root := t.TempDir()
	// Lexical order: a/1.png, a/2.png, b/1.png
	writePNG(t, filepath.Join(root, "a", "1.png"), 100, 100)
	writePNG(t, filepath.Join(root, "a", "2.png"), 100, 50)
	writePNG(t, filepath.Join(root, "b", "1.png"), 50, 100)

	enc := &fakeEncoder{facesPerCall: []int{2, 0, 1}}
	ds, err := newPipeline(enc).Process(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a", "b"}, ds.Names)
	assert.Equal(t, []models.Encoding{{1, 0}, {1, 1}, {3, 0}}, ds.Encodings)
	assert.Equal(t, []image.Point{image.Pt(1000, 1000), image.Pt(1000, 500), image.Pt(1000, 2000)}, enc.sizes)
}

func TestProcess_UnreadableImageIsSkipped(t *testing.T) {
	logs := captureLogs(t)
	root := t.TempDir()
	broken := filepath.Join(root, "a", "0-broken.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(broken), 0777))
	require.NoError(t, os.WriteFile(broken, []byte("garbage"), 0644))
	writeJPEG(t, filepath.Join(root, "a", "1-ok.jpg"), 100, 100)

	enc := &fakeEncoder{facesPerCall: []int{1}}
	ds, err := newPipeline(enc).Process(root)
	require.NoError(t, err)
	assert.Equal(t, 1, enc.calls, "detection must not run for the broken image")
	assert.Equal(t, []string{"a"}, ds.Names)
	assert.Contains(t, logs.String(), "the image file was not properly loaded")
	assert.Contains(t, logs.String(), broken)
}

func TestProcess_EncoderErrorStopsRun(t *testing.T) {
	captureLogs(t)
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "a", "1.png"), 20, 20)

	boom := errors.New("dlib exploded")
	_, err := newPipeline(&fakeEncoder{err: boom}).Process(root)
	assert.ErrorIs(t, err, boom)
}

func TestProcess_MissingDataset(t *testing.T) {
	captureLogs(t)
	_, err := newPipeline(&fakeEncoder{}).Process(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestProcess_WritesFaceIndex(t *testing.T) {
	captureLogs(t)
	require.NoError(t, db.Init("", filepath.Join(t.TempDir(), "faces.db")))
	t.Cleanup(func() { db.Instance = nil })
	require.NoError(t, models.Init())

	root := t.TempDir()
	writePNG(t, filepath.Join(root, "mae_jemison", "1.png"), 40, 20)

	ds, err := newPipeline(&fakeEncoder{facesPerCall: []int{2}}).Process(root)
	require.NoError(t, err)

	rows, err := models.FacesForRun("test-run")
	require.NoError(t, err)
	require.Len(t, rows, ds.Len())
	for i, row := range rows {
		assert.Equal(t, "mae_jemison", row.Name)
		assert.Equal(t, i, row.Num)
		assert.Equal(t, ds.Encodings[i], row.GetEncoding())
	}
	assert.Equal(t, image.Rect(10, 0, 20, 10), rows[1].GetRectangle())
}
