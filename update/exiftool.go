package update

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Writer writes metadata fields into a photo file.
type Writer interface {
	Write(path, customName, description string) error
}

// ExiftoolWriter shells out to exiftool, which rewrites the file in
// place. An empty value clears the corresponding tag.
type ExiftoolWriter struct{}

// Available reports whether the exiftool binary can be found.
func (ExiftoolWriter) Available() bool {
	_, err := exec.LookPath("exiftool")
	return err == nil
}

func (ExiftoolWriter) Write(path, customName, description string) error {
	args := []string{
		"-overwrite_original",
		"-ImageDescription=" + description,
		"-Artist=" + customName,
		path,
	}

	command := exec.Command("exiftool", args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("exiftool on %s: %s: %w", path, detail, err)
		}
		return fmt.Errorf("exiftool on %s: %w", path, err)
	}
	return nil
}
