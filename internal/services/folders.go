package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/platform/envutil"
)

// Artifact folders sit under the data dir, split by project type:
//
//	{DATA_DIR}/過去工事/{code}_{name}/
//	{DATA_DIR}/新規工事/{code}_{name}/
//
// The uploaded order record is kept inside as コリンズ.{ext}; design-document
// uploads go under a 設計書/ subfolder.
const (
	pastProjectsDir    = "過去工事"
	currentProjectsDir = "新規工事"
	designDocSubdir    = "設計書"
	orderRecordStem    = "コリンズ"
)

var folderNameUnsafeRe = regexp.MustCompile(`[\\/:*?"<>|]`)

func dataDir() string {
	return envutil.GetEnv("DATA_DIR", "data", nil)
}

func sanitizeFolderName(name string) string {
	return folderNameUnsafeRe.ReplaceAllString(strings.TrimSpace(name), "_")
}

// projectFolderPath builds the folder path for a project without creating it.
func projectFolderPath(projectType, code, projectName string) string {
	typeDir := currentProjectsDir
	if projectType == domain.ProjectTypePast {
		typeDir = pastProjectsDir
	}
	name := sanitizeFolderName(projectName)
	if name == "" {
		name = "無題"
	}
	return filepath.Join(dataDir(), typeDir, fmt.Sprintf("%s_%s", code, name))
}

func ensureFolder(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create folder %s: %w", path, err)
	}
	return nil
}

// copyIntoFolder copies src into destDir under destName, overwriting any
// existing file of the same name.
func copyIntoFolder(src, destDir, destName string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()

	destPath := filepath.Join(destDir, destName)
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("copy to %s: %w", destPath, err)
	}
	return destPath, nil
}

// copyDesignDocument places an upload under the project's 設計書 subfolder.
// Name collisions get a numeric suffix instead of overwriting: 図面.pdf,
// 図面_1.pdf, 図面_2.pdf and so on.
func copyDesignDocument(folderPath, src string) (string, error) {
	docDir := filepath.Join(folderPath, designDocSubdir)
	if err := ensureFolder(docDir); err != nil {
		return "", err
	}

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	destName := base
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(docDir, destName)); os.IsNotExist(err) {
			break
		}
		destName = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
	return copyIntoFolder(src, docDir, destName)
}
