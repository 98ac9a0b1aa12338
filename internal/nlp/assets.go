package nlp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
)

// PrepareModel resolves the on-disk path of an ONNX model asset. When the
// asset is missing it either downloads it (allowDownload) or fails fast so
// the pipeline never stalls on a mid-run download.
func PrepareModel(modelDir, modelName string, allowDownload bool) (string, error) {
	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))

	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	}

	if !allowDownload {
		return "", fmt.Errorf("model asset %q not found under %s: run `claims-analyzer models pull` first", modelName, modelDir)
	}

	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}
	downloadOptions := hugot.NewDownloadOptions()
	downloadOptions.OnnxFilePath = "onnx/model.onnx"
	downloadedPath, err := hugot.DownloadModel(modelName, modelDir, downloadOptions)
	if err != nil {
		return "", fmt.Errorf("download model %q: %w", modelName, err)
	}
	return downloadedPath, nil
}
