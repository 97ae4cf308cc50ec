package company

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Company is one directory entry with the coaching context used to build
// question and feedback prompts.
type Company struct {
	CompanyID     string   `yaml:"company_id" json:"company_id"`
	Name          string   `yaml:"name" json:"name"`
	Summary       string   `yaml:"company_summary" json:"company_summary"`
	TalentProfile []string `yaml:"talent_profile" json:"talent_profile"`
	CultureFit    []string `yaml:"culture_fit" json:"culture_fit"`
	Jobs          []Job    `yaml:"jobs" json:"jobs"`
}

// Job is one open role within a company.
type Job struct {
	JobID       string   `yaml:"job_id" json:"job_id"`
	Title       string   `yaml:"title" json:"title"`
	FocusPoints []string `yaml:"focus_points" json:"focus_points"`
}

// Directory exposes read-only company/job lookup.
type Directory struct {
	companies []Company
}

// Load reads the YAML company file. A missing file yields an empty directory
// rather than an error so the service degrades to generic questions.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Directory{}, nil
		}
		return nil, fmt.Errorf("failed to read company data %s: %w", path, err)
	}

	var doc struct {
		Companies []Company `yaml:"companies"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse company data %s: %w", path, err)
	}

	return &Directory{companies: doc.Companies}, nil
}

// NewDirectory returns a directory over the supplied entries, used by tests.
func NewDirectory(companies []Company) *Directory {
	return &Directory{companies: append([]Company(nil), companies...)}
}

// LookupCompany finds a company by identifier.
func (d *Directory) LookupCompany(companyID string) (Company, bool) {
	for _, c := range d.companies {
		if c.CompanyID == companyID {
			return c, true
		}
	}
	return Company{}, false
}

// LookupJob finds a job within a company.
func (d *Directory) LookupJob(companyID, jobID string) (Job, bool) {
	c, ok := d.LookupCompany(companyID)
	if !ok {
		return Job{}, false
	}
	for _, j := range c.Jobs {
		if j.JobID == jobID {
			return j, true
		}
	}
	return Job{}, false
}
