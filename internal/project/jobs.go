package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/barcut/internal/model"
)

// JobFormatVersion is written into every job file.
const JobFormatVersion = "1"

// ErrUnsupportedJob is returned for job files written by an unknown format
// version.
var ErrUnsupportedJob = errors.New("unsupported job file version")

// JobFile is a saved optimisation run: the inputs that produced it and the
// resulting plan, so reports can be regenerated without re-running.
type JobFile struct {
	Version string            `json:"version"`
	SavedAt time.Time         `json:"saved_at"`
	Inputs  []string          `json:"inputs,omitempty"` // Source files the records came from
	Records []model.RawRecord `json:"records"`
	Result  model.PlanResult  `json:"result"`
}

// SaveJob writes a job file.
func SaveJob(path string, inputs []string, records []model.RawRecord, result model.PlanResult) error {
	job := JobFile{
		Version: JobFormatVersion,
		SavedAt: time.Now().UTC(),
		Inputs:  inputs,
		Records: records,
		Result:  result,
	}
	if err := writeJSON(path, job); err != nil {
		return fmt.Errorf("save job %s: %w", path, err)
	}
	return nil
}

// LoadJob reads a job file written by SaveJob.
func LoadJob(path string) (JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JobFile{}, fmt.Errorf("read job %s: %w", path, err)
	}
	var job JobFile
	if err := json.Unmarshal(data, &job); err != nil {
		return JobFile{}, fmt.Errorf("parse job %s: %w", path, err)
	}
	if job.Version != JobFormatVersion {
		return JobFile{}, fmt.Errorf("job %s version %q: %w", path, job.Version, ErrUnsupportedJob)
	}
	return job, nil
}
