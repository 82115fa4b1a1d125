package canvas

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/matzehuels/nnviz/pkg/errors"
)

// Open shows a saved figure in the system viewer. It returns once the viewer
// has been started.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
