package company

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `companies:
  - company_id: nexon-kr
    name: 넥슨코리아
    company_summary: 게임사
    talent_profile:
      - 유저 중심
    jobs:
      - job_id: server-dev
        title: 게임 서버 개발자
        focus_points:
          - 대규모 트래픽 처리
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample err: %v", err)
	}
	return path
}

func TestLoadAndLookup(t *testing.T) {
	dir, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	c, ok := dir.LookupCompany("nexon-kr")
	if !ok {
		t.Fatal("expected company to be found")
	}
	if c.Name != "넥슨코리아" {
		t.Fatalf("unexpected company name: %q", c.Name)
	}

	j, ok := dir.LookupJob("nexon-kr", "server-dev")
	if !ok {
		t.Fatal("expected job to be found")
	}
	if len(j.FocusPoints) != 1 {
		t.Fatalf("unexpected focus points: %v", j.FocusPoints)
	}
}

func TestLookupUnknown(t *testing.T) {
	dir, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if _, ok := dir.LookupCompany("unknown"); ok {
		t.Fatal("expected unknown company to be absent")
	}
	if _, ok := dir.LookupJob("nexon-kr", "unknown"); ok {
		t.Fatal("expected unknown job to be absent")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected missing file to degrade to empty directory, got %v", err)
	}
	if _, ok := dir.LookupCompany("nexon-kr"); ok {
		t.Fatal("expected empty directory")
	}
}
