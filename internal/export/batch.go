package export

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
)

// batchFile is the TOML layout of a batch:
//
//	[[job]]
//	target = "out/matthew1.html"
//	passages = ["Matthew 1:1-3"]
//	style = "both"
type batchFile struct {
	Jobs []Job `toml:"job"`
}

// ReadBatch reads a list of export jobs from a TOML file.
func ReadBatch(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("batch file", path)
		}
		return nil, errors.NewIO("read", path, err)
	}
	return ParseBatch(data, path)
}

// ParseBatch decodes batch TOML. Every job needs a target and at least
// one passage.
func ParseBatch(data []byte, path string) ([]Job, error) {
	var bf batchFile
	md, err := toml.Decode(string(data), &bf)
	if err != nil {
		return nil, errors.NewParse("toml", path, 0, err.Error())
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.NewParse("toml", path, 0, "unknown key "+undecoded[0].String())
	}
	if len(bf.Jobs) == 0 {
		return nil, errors.NewValidation("job", "", "batch has no jobs")
	}
	for _, job := range bf.Jobs {
		if job.Target == "" {
			return nil, errors.NewValidation("job.target", "", "missing")
		}
		if len(job.Passages) == 0 {
			return nil, errors.NewValidation("job.passages", job.Target, "no passages")
		}
	}
	return bf.Jobs, nil
}
