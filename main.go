package main

import (
	"encodefaces/config"
	"encodefaces/db"
	"encodefaces/encodings"
	"encodefaces/faces"
	"encodefaces/models"
	"encodefaces/processing"
	"encodefaces/storage"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	cli "github.com/spf13/cobra"
)

var rootCmd = &cli.Command{
	Use:   "encodefaces",
	Short: "Encode the faces of a labeled image dataset",
	Long: "Walks a dataset where every image sits in a directory named after the person in it,\n" +
		"computes a 128-d encoding for every detected face and serializes all\n" +
		"encodings with their names into a single file.",
	Example:       "  encodefaces --dataset dataset --encodings encodings.msgp",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEncode,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("dataset", "i", "", "path to input directory of faces + images")
	flags.StringP("encodings", "e", "", "path to serialized db of facial encodings (local path or s3://bucket/key, .zst compresses)")
	flags.StringP("detection-method", "d", config.DETECTION_METHOD, "face detection model to use: either `hog` or `cnn`")
	flags.StringP("models", "m", config.MODELS_DIR, "directory with the dlib models")
	flags.Int("width", config.IMAGE_WIDTH, "width every image is resized to before detection")
	_ = rootCmd.MarkFlagRequired("dataset")
	_ = rootCmd.MarkFlagRequired("encodings")

	rootCmd.AddCommand(inspectCmd)
}

func setupLogging() {
	level := slog.LevelInfo
	if config.DEBUG_MODE {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))
}

func runEncode(cmd *cli.Command, args []string) error {
	flags := cmd.Flags()
	datasetDir, _ := flags.GetString("dataset")
	target, _ := flags.GetString("encodings")
	methodName, _ := flags.GetString("detection-method")
	modelsDir, _ := flags.GetString("models")
	width, _ := flags.GetInt("width")

	method, err := models.ParseDetectionMethod(methodName)
	if err != nil {
		return err
	}
	if width <= 0 {
		return fmt.Errorf("invalid --width %d", width)
	}
	store, path, err := storage.For(target)
	if err != nil {
		return err
	}

	if err = db.Init(config.MYSQL_DSN, config.SQLITE_FILE); err != nil {
		return fmt.Errorf("opening face index: %w", err)
	}
	if err = models.Init(); err != nil {
		return fmt.Errorf("migrating face index: %w", err)
	}

	rec, err := faces.New(modelsDir, config.FACE_SIZE, float32(config.FACE_PADDING), config.FACE_JITTERS)
	if err != nil {
		return err
	}
	defer rec.Close()

	pipeline := &processing.Pipeline{
		Encoder:     rec,
		Method:      method,
		Width:       width,
		JPEGQuality: config.JPEG_QUALITY,
		RunID:       uuid.NewString(),
	}
	ds, err := pipeline.Process(datasetDir)
	if err != nil {
		return err
	}

	slog.Info("serializing encodings...", "target", store.GetFullPath(path), "encodings", ds.Len())
	if err = encodings.Save(store, path, ds); err != nil {
		return err
	}
	if db.Instance != nil {
		slog.Info("face index updated", "run", pipeline.RunID)
	}
	return nil
}

func main() {
	setupLogging()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("encodefaces failed", "error", err)
		os.Exit(1)
	}
}
