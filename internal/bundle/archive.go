package bundle

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/goliatone/go-quizz/internal/output"
)

// WriteArchive packs the manifest and every file it lists into an xz
// compressed tarball at target. The manifest is always the first member.
func WriteArchive(target, root string, manifest *Manifest) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("bundle archive: create directory: %w", err)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("bundle archive: create: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	compressWriter, err := xz.NewWriter(file)
	if err != nil {
		return fmt.Errorf("bundle archive: create xz writer: %w", err)
	}
	tarWriter := tar.NewWriter(compressWriter)

	manifestData, err := output.MarshalJSON(manifest)
	if err != nil {
		return fmt.Errorf("bundle archive: encode manifest: %w", err)
	}
	if err := writeTarBytes(tarWriter, ManifestName, manifestData); err != nil {
		return fmt.Errorf("bundle archive: write manifest: %w", err)
	}

	for _, entry := range manifest.Files {
		if err := writeTarFile(tarWriter, root, entry); err != nil {
			return fmt.Errorf("bundle archive: write %s: %w", entry.Path, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("bundle archive: close tar: %w", err)
	}
	if err := compressWriter.Close(); err != nil {
		return fmt.Errorf("bundle archive: close xz: %w", err)
	}
	return nil
}

func writeTarBytes(tw *tar.Writer, name string, data []byte) error {
	header := &tar.Header{
		Name: name,
		Mode: 0o644,
		Size: int64(len(data)),
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}

func writeTarFile(tw *tar.Writer, root string, entry ManifestEntry) error {
	file, err := os.Open(filepath.Join(root, filepath.FromSlash(entry.Path)))
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = entry.Path
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = io.Copy(tw, file)
	return err
}
