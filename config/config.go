package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	MODELS_DIR       = "models" // Must contain the dlib *.dat models used by go-face
	DETECTION_METHOD = "cnn"    // "hog" or "cnn". CNN is much slower, supposedly more accurate at different angles
	IMAGE_WIDTH      = 1000     // Every image is resized to this width before detection
	FACE_SIZE        = 150      // Size of the face chip passed to the embedding network
	FACE_PADDING     = 0.25     // Padding around the face chip
	FACE_JITTERS     = 10       // How many times each face is re-sampled when computing its encoding
	JPEG_QUALITY     = 95
	DEBUG_MODE       = false
	MYSQL_DSN        = ""          // Face index goes to MySQL if this is set
	SQLITE_FILE      = ""          // SQLite will be used if MYSQL_DSN is not configured and this is set
	S3_REGION        = "us-east-1" // Used for s3://bucket/key encodings targets
	S3_ENDPOINT      = ""          // Custom endpoint for S3 compatible services (e.g. MinIO)
	ZSTD_LEVEL       = 3
)

func init() {
	Load()
}

// Load (re)reads all settings from the environment.
func Load() {
	readEnvString("MODELS_DIR", &MODELS_DIR)
	readEnvString("DETECTION_METHOD", &DETECTION_METHOD)
	readEnvInt("IMAGE_WIDTH", &IMAGE_WIDTH)
	readEnvInt("FACE_SIZE", &FACE_SIZE)
	readEnvFloat("FACE_PADDING", &FACE_PADDING)
	readEnvInt("FACE_JITTERS", &FACE_JITTERS)
	readEnvInt("JPEG_QUALITY", &JPEG_QUALITY)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvInt("ZSTD_LEVEL", &ZSTD_LEVEL)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvFloat(name string, value *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
