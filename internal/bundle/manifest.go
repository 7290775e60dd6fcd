package bundle

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/zeebo/blake3"
)

// ManifestName is written at the bundle root and skipped when hashing.
const ManifestName = "manifest.json"

// DigestAlgorithm names the hash recorded for every bundled file.
const DigestAlgorithm = "blake3"

// Manifest lists every exported file with its size and digest.
type Manifest struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Algorithm   string          `json:"algorithm"`
	Folders     []string        `json:"folders"`
	Files       []ManifestEntry `json:"files"`
}

// ManifestEntry describes one bundled file. Path is slash separated and
// relative to the bundle root.
type ManifestEntry struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Digest string `json:"digest"`
}

// Digest returns the hex encoded BLAKE3-256 digest of r.
func Digest(r io.Reader) (string, error) {
	hasher := blake3.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// BuildManifest hashes the given entries below root. Entries may be files or
// directories; directories are walked recursively.
func BuildManifest(root string, entries []string, now time.Time) (*Manifest, error) {
	manifest := &Manifest{
		GeneratedAt: now,
		Algorithm:   DigestAlgorithm,
		Folders:     []string{},
		Files:       []ManifestEntry{},
	}

	for _, entry := range entries {
		start := filepath.Join(root, filepath.FromSlash(entry))
		err := filepath.WalkDir(start, func(current string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, current)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if rel == ManifestName {
				return nil
			}
			file, err := hashFile(current)
			if err != nil {
				return err
			}
			file.Path = rel
			manifest.Files = append(manifest.Files, file)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("bundle manifest: hash %s: %w", entry, err)
		}
	}

	sort.Slice(manifest.Files, func(i, j int) bool {
		return manifest.Files[i].Path < manifest.Files[j].Path
	})
	return manifest, nil
}

// Verify recomputes every digest below root and returns the paths whose
// content is missing or differs from the manifest.
func (m *Manifest) Verify(root string) ([]string, error) {
	var mismatched []string
	for _, entry := range m.Files {
		current, err := hashFile(filepath.Join(root, filepath.FromSlash(entry.Path)))
		if err != nil {
			if os.IsNotExist(err) {
				mismatched = append(mismatched, entry.Path)
				continue
			}
			return nil, err
		}
		if current.Digest != entry.Digest || current.Size != entry.Size {
			mismatched = append(mismatched, entry.Path)
		}
	}
	return mismatched, nil
}

func hashFile(target string) (ManifestEntry, error) {
	file, err := os.Open(target)
	if err != nil {
		return ManifestEntry{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return ManifestEntry{}, err
	}
	digest, err := Digest(file)
	if err != nil {
		return ManifestEntry{}, err
	}
	return ManifestEntry{Size: info.Size(), Digest: digest}, nil
}
