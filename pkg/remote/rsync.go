package remote

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
	log "github.com/sirupsen/logrus"

	"github.com/kralicky/papyrusctl/pkg/markers"
)

const TypeRsync = "rsync"

var ErrInvalidPath = errors.New("invalid remote path")
var ErrRsyncFailed = errors.New("rsync command failed")

// RsyncSpec is the `remote:` block of a render definition.
type RsyncSpec struct {
	Type string `json:"type"`
	IP   string `json:"ip"`
	Path string `json:"path"`
}

func (s *RsyncSpec) Validate() error {
	if s.IP == "" {
		return fmt.Errorf("%w: ip is required", ErrInvalidPath)
	}
	if strings.Contains(s.Path, ":") {
		return fmt.Errorf("%w: path cannot contain a colon", ErrInvalidPath)
	}
	if strings.Contains(s.Path, `"`) {
		return fmt.Errorf("%w: path cannot contain a double quote", ErrInvalidPath)
	}
	return nil
}

// Rsync uploads a rendered map to an rsync daemon module.
type Rsync struct {
	IP   string
	Path string
	// Tool is the rsync executable; tests point it at a stub.
	Tool string
}

func NewRsync(spec *RsyncSpec) (*Rsync, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Rsync{IP: spec.IP, Path: spec.Path, Tool: "rsync"}, nil
}

func (r *Rsync) String() string {
	return fmt.Sprintf("rsync %s::%s", r.IP, r.Path)
}

// Command returns the rsync arguments for uploading src to <path>/<destSuffix>
// on the remote. The remote directory is created first if needed.
func (r *Rsync) Command(src, destSuffix string) []string {
	return []string{
		"--rsync-path", fmt.Sprintf("mkdir -p %s && rsync", shellQuote(r.Path)),
		"-rltz",
		"--delete",
		src,
		fmt.Sprintf("%s::%s/%s", r.IP, r.Path, destSuffix),
	}
}

// Upload copies the contents of <dest>/map.
func (r *Rsync) Upload(dest string) error {
	src, err := filepath.Abs(filepath.Join(dest, "map"))
	if err != nil {
		return err
	}
	return r.run(src+"/", "")
}

// UploadPlayersData copies only <dest>/map/playersData.js.
func (r *Rsync) UploadPlayersData(dest string) error {
	src, err := filepath.Abs(markers.PlayersDataPath(dest))
	if err != nil {
		return err
	}
	return r.run(src, markers.PlayersDataFile)
}

func (r *Rsync) run(src, destSuffix string) error {
	args := r.Command(src, destSuffix)
	log.Debug(r.Tool + " " + strings.Join(args, " "))
	var out bytes.Buffer
	cmd := exec.Command(r.Tool, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		log.Debug(strings.TrimSpace(out.String()))
		if !sh.CmdRan(err) {
			return fmt.Errorf("%w: %v", ErrRsyncFailed, err)
		}
		return fmt.Errorf("%w (status %d)", ErrRsyncFailed, sh.ExitStatus(err))
	}
	return nil
}

func shellQuote(s string) string {
	safe := s != ""
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			c == '/' || c == '.' || c == '-' || c == '_' || c == '@' || c == '%' || c == '+' || c == '=' || c == ',') {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
